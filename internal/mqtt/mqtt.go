// Package mqtt connects the face to its phone-side feed: battery,
// connection and settings notifications in, lifecycle and haptic events
// out. The real implementation uses paho; fakes allow testing without a
// broker.
package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sweeney/arc-diem/internal/logic"
)

// DefaultPrefix is the topic prefix used when none is configured.
const DefaultPrefix = "arcdiem"

// Topics are the MQTT topics under one prefix.
type Topics struct {
	Battery    string
	Connection string
	Settings   string
	System     string
	Haptic     string
}

// NewTopics returns the topics under prefix.
func NewTopics(prefix string) Topics {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Topics{
		Battery:    prefix + "/battery",
		Connection: prefix + "/connection",
		Settings:   prefix + "/settings",
		System:     prefix + "/system",
		Haptic:     prefix + "/haptic",
	}
}

// Source delivers notifications from the phone side. Channels are never
// closed while the source is open.
type Source interface {
	Battery() <-chan logic.BatteryState
	Connection() <-chan bool
	// Settings delivers raw JSON settings messages.
	Settings() <-chan []byte
	// PeekConnected returns the latest connection value without waiting
	// for a notification. ok is false until one has been received.
	PeekConnected() (connected, ok bool)
}

// Publisher publishes face events to MQTT.
type Publisher interface {
	// PublishSystem sends a system lifecycle event to the broker.
	// Returns error if publishing fails (should not crash the process).
	PublishSystem(event SystemEvent) error

	// PublishHaptic announces a haptic pattern fired at a given time.
	PublishHaptic(at time.Time, p logic.Pattern) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// DefaultClientID returns a client id unique to this process.
func DefaultClientID() string {
	return "arcdiem-" + uuid.NewString()[:8]
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "OFFLINE"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// HapticPayload represents the MQTT message payload for a fired haptic.
type HapticPayload struct {
	Haptic HapticPayloadInner `json:"haptic"`
}

// HapticPayloadInner contains the haptic details.
type HapticPayloadInner struct {
	Timestamp  string  `json:"timestamp"`
	Pattern    string  `json:"pattern"`
	SegmentsMs []int64 `json:"segments_ms"`
}

// FormatHapticPayload creates the JSON payload for a fired haptic.
func FormatHapticPayload(at time.Time, p logic.Pattern) ([]byte, error) {
	segs := make([]int64, len(p.Segments))
	for i, s := range p.Segments {
		segs[i] = s.Milliseconds()
	}
	return json.Marshal(HapticPayload{
		Haptic: HapticPayloadInner{
			Timestamp:  at.UTC().Format(time.RFC3339),
			Pattern:    string(p.Kind),
			SegmentsMs: segs,
		},
	})
}

var errMissingField = errors.New("missing field")

// BatteryPayload is an inbound battery notification.
type BatteryPayload struct {
	Percent  *int `json:"percent"`
	Charging bool `json:"charging"`
}

// ParseBattery decodes a battery notification. The percentage is
// clamped to [0,100].
func ParseBattery(data []byte) (logic.BatteryState, error) {
	var p BatteryPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return logic.BatteryState{}, fmt.Errorf("decode battery: %w", err)
	}
	if p.Percent == nil {
		return logic.BatteryState{}, fmt.Errorf("decode battery: percent: %w", errMissingField)
	}
	return logic.BatteryState{
		Percent:    logic.ClampPercent(*p.Percent),
		IsCharging: p.Charging,
	}, nil
}

// ConnectionPayload is an inbound connection notification.
type ConnectionPayload struct {
	Connected *bool `json:"connected"`
}

// ParseConnection decodes a connection notification.
func ParseConnection(data []byte) (bool, error) {
	var p ConnectionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return false, fmt.Errorf("decode connection: %w", err)
	}
	if p.Connected == nil {
		return false, fmt.Errorf("decode connection: connected: %w", errMissingField)
	}
	return *p.Connected, nil
}

// ValidateSettings checks that data is a JSON object. Individual values
// are checked when the settings are resolved.
func ValidateSettings(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	return nil
}
