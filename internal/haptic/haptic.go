// Package haptic drives the vibration motor.
// The real implementation toggles a Linux GPIO character device line.
// The fake implementation records patterns for tests.
package haptic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sweeney/arc-diem/internal/logic"
)

// ErrClosed is returned by Vibrate after Close.
var ErrClosed = errors.New("haptic: vibrator closed")

// Vibrator plays vibration patterns.
type Vibrator interface {
	// Vibrate starts p and returns without waiting for it to finish.
	// A pattern still playing is cut short.
	Vibrate(p logic.Pattern) error

	// Close stops the motor and releases resources.
	Close() error
}

// Line is a digital output driving the motor, 1 = on.
type Line interface {
	SetValue(value int) error
}

// Player plays patterns on a Line, alternating on and off for each
// segment, starting with on. The line is always left off.
type Player struct {
	line Line
	log  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// NewPlayer creates a Player for line.
func NewPlayer(line Line, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{line: line, log: logger}
}

// Vibrate switches the motor on and plays the rest of p in the background.
func (p *Player) Vibrate(pat logic.Pattern) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.stopLocked()
	if len(pat.Segments) == 0 {
		return nil
	}
	if err := p.line.SetValue(1); err != nil {
		return fmt.Errorf("motor on: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.cancel, p.done = cancel, done
	go p.play(ctx, pat, done)
	return nil
}

// Wait blocks until the current pattern has finished or been cut short.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Close stops any pattern in flight. Later calls to Vibrate fail.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.closed = true
	return nil
}

func (p *Player) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
}

func (p *Player) play(ctx context.Context, pat logic.Pattern, done chan struct{}) {
	defer close(done)
	defer func() {
		if err := p.line.SetValue(0); err != nil {
			p.log.Error("motor off failed", "error", err)
		}
	}()

	on := true
	for i, seg := range pat.Segments {
		if i > 0 {
			on = !on
			v := 0
			if on {
				v = 1
			}
			if err := p.line.SetValue(v); err != nil {
				p.log.Error("motor toggle failed", "pattern", string(pat.Kind), "error", err)
				return
			}
		}
		t := time.NewTimer(seg)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}
