//go:build !linux

package haptic

import (
	"errors"
	"log/slog"
)

// MotorVibrator is not available on non-Linux platforms.
type MotorVibrator struct {
	*Player
}

// NewMotorVibrator returns an error on non-Linux platforms.
func NewMotorVibrator(chipName string, pin int, logger *slog.Logger) (*MotorVibrator, error) {
	return nil, errors.New("haptic: not supported on this platform (requires Linux)")
}
