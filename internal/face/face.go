// Package face owns the clock face state and reconciles every event
// source into it. All methods must be called from a single goroutine;
// Snapshot values are safe to hand to other goroutines.
package face

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sweeney/arc-diem/internal/config"
	"github.com/sweeney/arc-diem/internal/datefmt"
	"github.com/sweeney/arc-diem/internal/logic"
	"github.com/sweeney/arc-diem/internal/render"
)

// Layer is a set of face layers needing a redraw.
type Layer uint8

const (
	LayerMain Layer = 1 << iota
	LayerBattery
	LayerBluetooth

	LayerNone Layer = 0
	LayerAll        = LayerMain | LayerBattery | LayerBluetooth
)

// Has reports whether every layer in x is set.
func (l Layer) Has(x Layer) bool { return l&x == x && x != 0 }

func (l Layer) String() string {
	if l == LayerNone {
		return "none"
	}
	var parts []string
	if l.Has(LayerMain) {
		parts = append(parts, "main")
	}
	if l.Has(LayerBattery) {
		parts = append(parts, "battery")
	}
	if l.Has(LayerBluetooth) {
		parts = append(parts, "bluetooth")
	}
	return strings.Join(parts, "|")
}

// Vibrator plays haptic patterns.
type Vibrator interface {
	Vibrate(p logic.Pattern) error
}

// HapticNotifier is told about every haptic the face fires.
type HapticNotifier interface {
	PublishHaptic(at time.Time, p logic.Pattern) error
}

// PeekFunc returns the current connection value without waiting for a
// change notification. ok is false when nothing is known yet.
type PeekFunc func() (connected, ok bool)

// Options configure a Face. Zero values are usable: default settings,
// English names, 24 hour clock off, no haptic sinks.
type Options struct {
	Settings config.Settings
	Locale   string
	Clock24  bool
	Vibrator Vibrator
	Notifier HapticNotifier
	Logger   *slog.Logger
}

// Face is the single owner of the face state.
type Face struct {
	settings config.Settings
	boundary logic.TimeBoundary
	display  logic.DisplayConfig
	battery  logic.BatteryState
	conn     *logic.ConnectivityController
	clock24  bool
	text     *datefmt.Formatter

	vibrator Vibrator
	notifier HapticNotifier
	log      *slog.Logger

	dirty       Layer
	lastDaytime *bool

	redraws      int
	haptics      int
	hapticErrors int
}

// New creates a Face from opts. Settings problems are logged and
// substituted, never returned.
func New(opts Options) (*Face, error) {
	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}
	text, err := datefmt.New(locale)
	if err != nil {
		return nil, fmt.Errorf("face text: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	settings := opts.Settings
	if settings == (config.Settings{}) {
		settings = config.Defaults()
	}

	f := &Face{
		conn:     logic.NewConnectivityController(),
		clock24:  opts.Clock24,
		text:     text,
		vibrator: opts.Vibrator,
		notifier: opts.Notifier,
		log:      logger,
		dirty:    LayerAll,
	}
	f.applySettings(settings)
	return f, nil
}

// HandleTick marks the main layer dirty. When the tick crosses a day or
// night boundary every layer is dirty, since icons follow the palette.
func (f *Face) HandleTick(now time.Time) {
	f.dirty |= LayerMain
	daytime := logic.ComputeDaytime(now, f.boundary).IsDaytime
	if f.lastDaytime != nil && *f.lastDaytime != daytime {
		f.log.Info("segment changed", "daytime", daytime, "time", now.Format(time.RFC3339))
		f.dirty |= LayerAll
	}
	f.lastDaytime = &daytime
}

// HandleBattery stores a new battery reading.
func (f *Face) HandleBattery(s logic.BatteryState) {
	clamped := logic.ClampPercent(s.Percent)
	if clamped != s.Percent {
		f.log.Warn("battery percent out of range", "percent", s.Percent, "used", clamped)
	}
	s.Percent = clamped
	f.battery = s
	f.dirty |= LayerBattery
}

// HandleConnectivity observes a new connection value and fires a haptic
// on a genuine transition.
func (f *Face) HandleConnectivity(now time.Time, connected bool) {
	icon, p := f.conn.Observe(connected, f.display)
	f.log.Debug("connectivity", "connected", connected, "icon", string(icon))
	if p != nil {
		f.fire(now, *p)
	}
	f.dirty |= LayerBluetooth
}

// HandleSettings applies new settings and re-evaluates connectivity
// against the peeked connection value. A peeked value that differs from
// the last observed one is a genuine transition and may fire a haptic.
func (f *Face) HandleSettings(now time.Time, s config.Settings, peek PeekFunc) {
	f.applySettings(s)
	f.log.Info("settings applied",
		"day_start", f.boundary.StartHour,
		"day_end", f.boundary.EndHour,
		"battery", string(f.display.Battery),
		"bluetooth", string(f.display.Bluetooth),
		"haptic_disconnect", f.display.HapticOnDisconnect,
		"haptic_connect", f.display.HapticOnConnect,
	)

	if peek != nil {
		if connected, ok := peek(); ok {
			if _, p := f.conn.Observe(connected, f.display); p != nil {
				f.fire(now, *p)
			}
		} else {
			f.conn.Refresh(f.display)
		}
	} else {
		f.conn.Refresh(f.display)
	}
	f.dirty |= LayerAll
}

// SetClock24 switches between 12 and 24 hour time.
func (f *Face) SetClock24(on bool) {
	if f.clock24 != on {
		f.clock24 = on
		f.dirty |= LayerMain
	}
}

// Dirty returns the layers changed since the last Draw.
func (f *Face) Dirty() Layer { return f.dirty }

// Frame derives everything drawn for now from the current state.
func (f *Face) Frame(now time.Time) render.Frame {
	d := logic.ComputeDaytime(now, f.boundary)
	return render.Frame{
		Daytime:   d,
		Angle:     logic.HandAngle(now, f.boundary, d),
		Text:      f.text.Text(now, f.clock24),
		Battery:   f.battery,
		BatteryOn: f.display.Battery,
		Bluetooth: f.conn.Icon(),
	}
}

// Draw paints the whole face for now and clears the dirty set. Daytime
// is recomputed on every call.
func (f *Face) Draw(s render.Surface, now time.Time) {
	fr := f.Frame(now)
	render.DrawFrame(s, fr)
	f.redraws++
	f.dirty = LayerNone
	daytime := fr.Daytime.IsDaytime
	f.lastDaytime = &daytime
}

func (f *Face) applySettings(s config.Settings) {
	b, cfg, problems := s.Resolve()
	for _, p := range problems {
		f.log.Warn("setting substituted", "field", p.Field, "value", p.Value, "used", p.Used, "error", p.Err)
	}
	f.settings = s
	f.boundary = b
	f.display = cfg
}

func (f *Face) fire(now time.Time, p logic.Pattern) {
	f.haptics++
	f.log.Info("haptic", "pattern", string(p.Kind), "duration_ms", p.Total().Milliseconds())
	if f.vibrator != nil {
		if err := f.vibrator.Vibrate(p); err != nil {
			f.hapticErrors++
			f.log.Error("vibrate failed", "pattern", string(p.Kind), "error", err)
		}
	}
	if f.notifier != nil {
		if err := f.notifier.PublishHaptic(now, p); err != nil {
			f.log.Error("publish haptic failed", "pattern", string(p.Kind), "error", err)
		}
	}
}
