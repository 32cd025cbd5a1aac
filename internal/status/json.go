package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Ready         bool         `json:"ready"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	Face          FaceJSON     `json:"face"`
	Phone         PhoneJSON    `json:"phone"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"counts"`
	Settings      SettingsJSON `json:"settings"`
	Config        ConfigJSON   `json:"config"`
}

// FaceJSON is what the face shows.
type FaceJSON struct {
	Mode       string  `json:"mode"`
	HandAngle  float64 `json:"hand_angle"`
	NextStart  string  `json:"next_start"`
	NextEnd    string  `json:"next_end"`
	Clock24    bool    `json:"clock_24h"`
	Locale     string  `json:"locale"`
	Dirty      string  `json:"dirty"`
	Frames     int     `json:"frames"`
	LastFrame  string  `json:"last_frame,omitempty"`
	Battery    bool    `json:"battery_shown"`
	BTIcon     string  `json:"bluetooth_icon"`
	Background string  `json:"background"`
}

// PhoneJSON is the last state reported by the phone.
type PhoneJSON struct {
	Connected *bool `json:"connected"`
	Battery   int   `json:"battery_percent"`
	Charging  bool  `json:"charging"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of the counters.
type CountsJSON struct {
	Lost         int               `json:"lost"`
	Found        int               `json:"found"`
	Redraws      int               `json:"redraws"`
	Haptics      int               `json:"haptics"`
	HapticErrors int               `json:"haptic_errors"`
	Dispatched   uint64            `json:"events_dispatched"`
	Delivered    uint64            `json:"events_delivered"`
	ByKind       map[string]uint64 `json:"events_by_kind,omitempty"`
}

// SettingsJSON is the resolved face settings.
type SettingsJSON struct {
	DayStart            int    `json:"day_start"`
	DayEnd              int    `json:"day_end"`
	BatteryStatus       string `json:"battery_status"`
	BluetoothStatus     string `json:"bluetooth_status"`
	BluetoothDisconnect bool   `json:"haptic_on_disconnect"`
	BluetoothConnect    bool   `json:"haptic_on_connect"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Broker      string `json:"broker"`
	TopicPrefix string `json:"topic_prefix"`
	HTTPAddr    string `json:"http_addr"`
	Display     string `json:"display"`
	Locale      string `json:"locale"`
}

// Mode returns "day" or "night" for the snapshot.
func (s Snapshot) Mode() string {
	if s.Face.Daytime.IsDaytime {
		return "day"
	}
	return "night"
}

func buildInner(snap Snapshot) StatusInner {
	fs := snap.Face
	inner := StatusInner{
		Ready:         snap.Ready,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Lost:         fs.Transitions.Lost,
			Found:        fs.Transitions.Found,
			Redraws:      fs.Redraws,
			Haptics:      fs.Haptics,
			HapticErrors: fs.HapticErrors,
			Dispatched:   snap.Events.Dispatched,
			Delivered:    snap.Events.Delivered,
			ByKind:       snap.Events.ByKind,
		},
		Config: ConfigJSON{
			Broker:      snap.Config.Broker,
			TopicPrefix: snap.Config.TopicPrefix,
			HTTPAddr:    snap.Config.HTTPAddr,
			Display:     snap.Config.Display,
			Locale:      snap.Config.Locale,
		},
	}
	if !snap.Ready {
		return inner
	}

	inner.Face = FaceJSON{
		Mode:       snap.Mode(),
		HandAngle:  fs.Angle,
		NextStart:  fs.Daytime.StartStamp.Format(time.RFC3339),
		NextEnd:    fs.Daytime.EndStamp.Format(time.RFC3339),
		Clock24:    fs.Clock24,
		Locale:     fs.Locale,
		Dirty:      fs.Dirty.String(),
		Frames:     snap.Frames,
		Battery:    fs.BatteryShown,
		BTIcon:     string(fs.Icon),
		Background: string(fs.Daytime.Palette.Image),
	}
	if !snap.LastFrame.IsZero() {
		inner.Face.LastFrame = snap.LastFrame.UTC().Format(time.RFC3339)
	}
	inner.Phone = PhoneJSON{
		Battery:  fs.Battery.Percent,
		Charging: fs.Battery.IsCharging,
	}
	if fs.ConnectionKnown {
		connected := fs.Connected
		inner.Phone.Connected = &connected
	}
	inner.Settings = SettingsJSON{
		DayStart:            fs.Boundary.StartHour,
		DayEnd:              fs.Boundary.EndHour,
		BatteryStatus:       string(fs.Display.Battery),
		BluetoothStatus:     string(fs.Display.Bluetooth),
		BluetoothDisconnect: fs.Display.HapticOnDisconnect,
		BluetoothConnect:    fs.Display.HapticOnConnect,
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
