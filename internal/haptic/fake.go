package haptic

import (
	"sync"

	"github.com/sweeney/arc-diem/internal/logic"
)

// FakeVibrator records patterns instead of playing them.
type FakeVibrator struct {
	mu sync.Mutex

	// Patterns contains every pattern passed to Vibrate, in order.
	Patterns []logic.Pattern

	// VibrateError, if set, is returned by Vibrate. The pattern is still recorded.
	VibrateError error

	// Closed tracks if Close was called
	Closed bool
}

// Vibrate records p.
func (f *FakeVibrator) Vibrate(p logic.Pattern) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Patterns = append(f.Patterns, p)
	return f.VibrateError
}

// Kinds returns the kinds of the recorded patterns.
func (f *FakeVibrator) Kinds() []logic.HapticKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]logic.HapticKind, len(f.Patterns))
	for i, p := range f.Patterns {
		out[i] = p.Kind
	}
	return out
}

// Close marks the vibrator as closed.
func (f *FakeVibrator) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Reset clears recorded patterns.
func (f *FakeVibrator) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Patterns = nil
	f.Closed = false
}

// FakeLine records every value written to it.
type FakeLine struct {
	mu     sync.Mutex
	values []int

	// SetError, if set, is returned by SetValue and the value is not recorded.
	SetError error
}

// SetValue records v.
func (l *FakeLine) SetValue(v int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.SetError != nil {
		return l.SetError
	}
	l.values = append(l.values, v)
	return nil
}

// Values returns a copy of the recorded values.
func (l *FakeLine) Values() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int(nil), l.values...)
}
