package face

import (
	"time"

	"github.com/sweeney/arc-diem/internal/config"
	"github.com/sweeney/arc-diem/internal/logic"
)

// Snapshot is a point-in-time view of the face state.
// It is a value type and shares nothing with the Face.
type Snapshot struct {
	At              time.Time
	Daytime         logic.DaytimeState
	Angle           float64
	Boundary        logic.TimeBoundary
	Display         logic.DisplayConfig
	Settings        config.Settings
	Battery         logic.BatteryState
	BatteryShown    bool
	Connected       bool
	ConnectionKnown bool
	Icon            logic.IconState
	Transitions     logic.TransitionCounts
	Clock24         bool
	Locale          string
	Dirty           Layer
	Redraws         int
	Haptics         int
	HapticErrors    int
}

// Snapshot returns the state the face would draw at now.
func (f *Face) Snapshot(now time.Time) Snapshot {
	d := logic.ComputeDaytime(now, f.boundary)
	connected, known := f.conn.Current()
	return Snapshot{
		At:              now,
		Daytime:         d,
		Angle:           logic.HandAngle(now, f.boundary, d),
		Boundary:        f.boundary,
		Display:         f.display,
		Settings:        f.settings,
		Battery:         f.battery,
		BatteryShown:    logic.BatteryVisible(f.battery, f.display.Battery),
		Connected:       connected,
		ConnectionKnown: known,
		Icon:            f.conn.Icon(),
		Transitions:     f.conn.Counts(),
		Clock24:         f.clock24,
		Locale:          f.text.Locale().String(),
		Dirty:           f.dirty,
		Redraws:         f.redraws,
		Haptics:         f.haptics,
		HapticErrors:    f.hapticErrors,
	}
}
