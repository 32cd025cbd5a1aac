package mqtt

import (
	"sync"
	"time"

	"github.com/sweeney/arc-diem/internal/logic"
)

// FakeSource is a Source driven by the test.
type FakeSource struct {
	battery    chan logic.BatteryState
	connection chan bool
	settings   chan []byte

	mu        sync.Mutex
	peek      bool
	peekKnown bool
}

// NewFakeSource creates a FakeSource with buffered channels.
func NewFakeSource() *FakeSource {
	return &FakeSource{
		battery:    make(chan logic.BatteryState, 16),
		connection: make(chan bool, 16),
		settings:   make(chan []byte, 16),
	}
}

func (f *FakeSource) Battery() <-chan logic.BatteryState { return f.battery }
func (f *FakeSource) Connection() <-chan bool            { return f.connection }
func (f *FakeSource) Settings() <-chan []byte            { return f.settings }

// SendBattery queues a battery notification.
func (f *FakeSource) SendBattery(s logic.BatteryState) {
	f.battery <- s
}

// SendConnection queues a connection notification and updates the peek
// value, as a broker delivery would.
func (f *FakeSource) SendConnection(connected bool) {
	f.SetPeek(connected)
	f.connection <- connected
}

// SendSettings queues a raw settings message.
func (f *FakeSource) SendSettings(data []byte) {
	f.settings <- data
}

// SetPeek sets the value returned by PeekConnected without queueing a
// notification.
func (f *FakeSource) SetPeek(connected bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.peek, f.peekKnown = connected, true
}

// PeekConnected returns the value set by SetPeek or SendConnection.
func (f *FakeSource) PeekConnected() (connected, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.peek, f.peekKnown
}

// HapticRecord is one PublishHaptic call.
type HapticRecord struct {
	At      time.Time
	Pattern logic.Pattern
}

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	mu sync.Mutex

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// Haptics contains all haptic announcements.
	Haptics []HapticRecord

	// HapticPayloads contains the JSON payloads for haptic announcements.
	HapticPayloads [][]byte

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// PublishHapticError, if set, will be returned by PublishHaptic.
	PublishHapticError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

// PublishHaptic records the haptic announcement.
func (f *FakePublisher) PublishHaptic(at time.Time, p logic.Pattern) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishHapticError != nil {
		return f.PublishHapticError
	}

	payload, err := FormatHapticPayload(at, p)
	if err != nil {
		return err
	}
	f.Haptics = append(f.Haptics, HapticRecord{At: at, Pattern: p})
	f.HapticPayloads = append(f.HapticPayloads, payload)
	return nil
}

// HapticKinds returns the kinds of the recorded haptics in order.
func (f *FakePublisher) HapticKinds() []logic.HapticKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]logic.HapticKind, len(f.Haptics))
	for i, h := range f.Haptics {
		kinds[i] = h.Pattern.Kind
	}
	return kinds
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Connected
}

// Reset clears recorded events.
func (f *FakePublisher) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Haptics = nil
	f.HapticPayloads = nil
	f.Closed = false
	f.PublishSystemError = nil
	f.PublishHapticError = nil
	f.Connected = false
}
