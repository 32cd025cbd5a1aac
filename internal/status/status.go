// Package status provides a thread-safe status tracker for the arcdiem daemon.
// The event loop writes to it; HTTP handlers and MQTT heartbeats read it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/arc-diem/internal/face"
)

// Config contains daemon configuration for display.
type Config struct {
	Broker      string
	TopicPrefix string
	HTTPAddr    string
	Display     string
	Locale      string
}

// EventCounts are the dispatcher totals.
type EventCounts struct {
	Dispatched uint64
	Delivered  uint64
	ByKind     map[string]uint64
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	Face          face.Snapshot
	Ready         bool
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Events        EventCounts
	Frames        int
	LastFrame     time.Time
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu    sync.RWMutex
	snap  Snapshot
	frame []byte
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update stores the face state. Called from the event loop after every
// handled event.
func (t *Tracker) Update(fs face.Snapshot) {
	t.mu.Lock()
	t.snap.Face = fs
	t.snap.Ready = true
	t.mu.Unlock()
}

// SetEvents stores the dispatcher totals.
func (t *Tracker) SetEvents(c EventCounts) {
	byKind := make(map[string]uint64, len(c.ByKind))
	for k, v := range c.ByKind {
		byKind[k] = v
	}
	c.ByKind = byKind
	t.mu.Lock()
	t.snap.Events = c
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetFrame stores the PNG encoding of the last frame shown.
func (t *Tracker) SetFrame(png []byte, at time.Time) {
	t.mu.Lock()
	t.frame = png
	t.snap.Frames++
	t.snap.LastFrame = at
	t.mu.Unlock()
}

// Frame returns the last frame and when it was shown. ok is false
// before the first frame.
func (t *Tracker) Frame() (png []byte, at time.Time, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frame, t.snap.LastFrame, t.frame != nil
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
