//go:build linux

package haptic

import (
	"fmt"
	"log/slog"

	"github.com/warthog618/go-gpiocdev"
)

// MotorVibrator drives a vibration motor on a GPIO character device line.
type MotorVibrator struct {
	*Player
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewMotorVibrator requests pin on chip as an output, initially off.
func NewMotorVibrator(chipName string, pin int, logger *slog.Logger) (*MotorVibrator, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("arcdiem-haptic"))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request motor pin %d: %w", pin, err)
	}

	return &MotorVibrator{
		Player: NewPlayer(line, logger),
		chip:   chip,
		line:   line,
	}, nil
}

// Close stops the motor and releases the line.
// The line is returned to an input with pull-down, matching Pi boot defaults.
func (m *MotorVibrator) Close() error {
	var errs []error

	if err := m.Player.Close(); err != nil {
		errs = append(errs, err)
	}
	if m.line != nil {
		if err := m.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure motor pin: %w", err))
		}
		if err := m.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close motor pin: %w", err))
		}
	}
	if m.chip != nil {
		if err := m.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
