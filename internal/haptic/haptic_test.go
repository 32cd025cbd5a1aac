package haptic

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sweeney/arc-diem/internal/logic"
)

func short(kind logic.HapticKind, n int) logic.Pattern {
	segs := make([]time.Duration, n)
	for i := range segs {
		segs[i] = time.Millisecond
	}
	return logic.Pattern{Kind: kind, Segments: segs}
}

func TestPlayer_AlternatesAndEndsOff(t *testing.T) {
	line := &FakeLine{}
	p := NewPlayer(line, nil)

	if err := p.Vibrate(short(logic.HapticLost, 3)); err != nil {
		t.Fatalf("Vibrate: %v", err)
	}
	p.Wait()

	want := []int{1, 0, 1, 0}
	if got := line.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("line values: got %v, want %v", got, want)
	}
}

func TestPlayer_NewPatternCancelsOld(t *testing.T) {
	line := &FakeLine{}
	p := NewPlayer(line, nil)

	long := logic.Pattern{Kind: logic.HapticLost, Segments: []time.Duration{time.Hour}}
	if err := p.Vibrate(long); err != nil {
		t.Fatalf("Vibrate: %v", err)
	}

	done := make(chan struct{})
	go func() {
		if err := p.Vibrate(short(logic.HapticFound, 1)); err != nil {
			t.Errorf("Vibrate: %v", err)
		}
		p.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("second pattern did not cancel the first")
	}

	// on (long), off (cancelled), on (short), off (finished)
	want := []int{1, 0, 1, 0}
	if got := line.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("line values: got %v, want %v", got, want)
	}
}

func TestPlayer_EmptyPattern(t *testing.T) {
	line := &FakeLine{}
	p := NewPlayer(line, nil)
	if err := p.Vibrate(logic.Pattern{}); err != nil {
		t.Fatalf("Vibrate: %v", err)
	}
	p.Wait()
	if got := line.Values(); len(got) != 0 {
		t.Errorf("line values: got %v, want none", got)
	}
}

func TestPlayer_LineError(t *testing.T) {
	line := &FakeLine{SetError: errors.New("busy")}
	p := NewPlayer(line, nil)
	if err := p.Vibrate(short(logic.HapticLost, 3)); err == nil {
		t.Error("expected error")
	}
}

func TestPlayer_Close(t *testing.T) {
	line := &FakeLine{}
	p := NewPlayer(line, nil)
	long := logic.Pattern{Kind: logic.HapticLost, Segments: []time.Duration{time.Hour}}
	if err := p.Vibrate(long); err != nil {
		t.Fatalf("Vibrate: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := line.Values(); !reflect.DeepEqual(got, []int{1, 0}) {
		t.Errorf("line values: got %v, want [1 0]", got)
	}
	if err := p.Vibrate(logic.SignalFound); !errors.Is(err, ErrClosed) {
		t.Errorf("Vibrate after Close: got %v, want ErrClosed", err)
	}
}

func TestPlayer_RealPatternLength(t *testing.T) {
	line := &FakeLine{}
	p := NewPlayer(line, nil)
	start := time.Now()
	if err := p.Vibrate(logic.SignalFound); err != nil {
		t.Fatalf("Vibrate: %v", err)
	}
	p.Wait()
	if elapsed := time.Since(start); elapsed < logic.SignalFound.Total() {
		t.Errorf("pattern finished after %v, want at least %v", elapsed, logic.SignalFound.Total())
	}
}

func TestFakeVibrator(t *testing.T) {
	f := &FakeVibrator{}
	var v Vibrator = f

	if err := v.Vibrate(logic.SignalLost); err != nil {
		t.Fatalf("Vibrate: %v", err)
	}
	f.VibrateError = errors.New("no motor")
	if err := v.Vibrate(logic.SignalFound); err == nil {
		t.Error("expected scripted error")
	}
	want := []logic.HapticKind{logic.HapticLost, logic.HapticFound}
	if got := f.Kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("Kinds: got %v, want %v", got, want)
	}

	v.Close()
	if !f.Closed {
		t.Error("expected Closed")
	}
	f.Reset()
	if len(f.Patterns) != 0 || f.Closed {
		t.Error("Reset did not clear state")
	}
}
