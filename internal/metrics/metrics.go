// Package metrics exposes the daemon state as Prometheus metrics.
// Most values are read from the status tracker at scrape time.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sweeney/arc-diem/internal/status"
)

// Metrics holds the collectors the event loop updates directly.
type Metrics struct {
	DrawDuration     prometheus.Histogram
	ShowErrors       prometheus.Counter
	SettingsRejected prometheus.Counter
}

// New registers all arcdiem metrics on reg.
func New(reg prometheus.Registerer, tracker *status.Tracker) *Metrics {
	f := promauto.With(reg)

	counter := func(name, help string, fn func(status.Snapshot) float64) {
		f.NewCounterFunc(prometheus.CounterOpts{Name: name, Help: help}, func() float64 {
			return fn(tracker.Snapshot())
		})
	}
	gauge := func(name, help string, fn func(status.Snapshot) float64) {
		f.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			return fn(tracker.Snapshot())
		})
	}

	counter("arcdiem_redraws_total", "Total number of face redraws",
		func(s status.Snapshot) float64 { return float64(s.Face.Redraws) })
	counter("arcdiem_frames_shown_total", "Total number of frames sent to the display",
		func(s status.Snapshot) float64 { return float64(s.Frames) })
	counter("arcdiem_haptics_total", "Total number of haptic patterns fired",
		func(s status.Snapshot) float64 { return float64(s.Face.Haptics) })
	counter("arcdiem_haptic_errors_total", "Total number of haptic patterns the motor failed to play",
		func(s status.Snapshot) float64 { return float64(s.Face.HapticErrors) })
	counter("arcdiem_connection_lost_total", "Total number of phone disconnects observed",
		func(s status.Snapshot) float64 { return float64(s.Face.Transitions.Lost) })
	counter("arcdiem_connection_found_total", "Total number of phone reconnects observed",
		func(s status.Snapshot) float64 { return float64(s.Face.Transitions.Found) })
	counter("arcdiem_events_dispatched_total", "Total number of events dispatched",
		func(s status.Snapshot) float64 { return float64(s.Events.Dispatched) })
	counter("arcdiem_events_delivered_total", "Total number of handler deliveries",
		func(s status.Snapshot) float64 { return float64(s.Events.Delivered) })

	gauge("arcdiem_daytime", "1 while the face shows the day palette",
		func(s status.Snapshot) float64 { return boolFloat(s.Face.Daytime.IsDaytime) })
	gauge("arcdiem_hand_angle_degrees", "Current hand angle clockwise from 12 o'clock",
		func(s status.Snapshot) float64 { return s.Face.Angle })
	gauge("arcdiem_phone_battery_percent", "Last battery percentage reported by the phone",
		func(s status.Snapshot) float64 { return float64(s.Face.Battery.Percent) })
	gauge("arcdiem_phone_connected", "1 while the phone is connected",
		func(s status.Snapshot) float64 { return boolFloat(s.Face.Connected) })
	gauge("arcdiem_mqtt_connected", "1 while the broker connection is up",
		func(s status.Snapshot) float64 { return boolFloat(s.MQTTConnected) })
	gauge("arcdiem_uptime_seconds", "Seconds since the daemon started",
		func(s status.Snapshot) float64 { return s.Uptime().Seconds() })

	return &Metrics{
		DrawDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "arcdiem_draw_duration_seconds",
			Help:    "Duration of a full face redraw including display update",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		ShowErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "arcdiem_show_errors_total",
			Help: "Total number of frames the display rejected",
		}),
		SettingsRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "arcdiem_settings_rejected_total",
			Help: "Total number of settings messages that could not be applied",
		}),
	}
}

// ObserveDraw records the duration of a redraw.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveDraw(start time.Time) {
	m.DrawDuration.Observe(time.Since(start).Seconds())
}

// IncrementShowErrors records a failed display update.
func (m *Metrics) IncrementShowErrors() {
	m.ShowErrors.Inc()
}

// IncrementSettingsRejected records a settings message that was dropped.
func (m *Metrics) IncrementSettingsRejected() {
	m.SettingsRejected.Inc()
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
