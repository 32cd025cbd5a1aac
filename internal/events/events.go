// Package events dispatches typed face events to subscribed handlers.
//
// Handlers run to completion one at a time. An event dispatched from
// inside a handler is queued and delivered after the current handler
// returns, so no handler ever runs re-entrantly.
package events

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/sweeney/arc-diem/internal/config"
	"github.com/sweeney/arc-diem/internal/logic"
)

// Kind is the type of an event.
type Kind int

const (
	Tick Kind = iota
	BatteryChanged
	ConnectivityChanged
	SettingsChanged
	numKinds
)

func (k Kind) String() string {
	switch k {
	case Tick:
		return "tick"
	case BatteryChanged:
		return "battery"
	case ConnectivityChanged:
		return "connectivity"
	case SettingsChanged:
		return "settings"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Kinds lists every event kind.
func Kinds() []Kind {
	return []Kind{Tick, BatteryChanged, ConnectivityChanged, SettingsChanged}
}

// Event is a notification from one of the face's sources. Only the
// payload field matching Kind is meaningful.
type Event struct {
	Kind      Kind
	Time      time.Time
	Battery   logic.BatteryState
	Connected bool
	Settings  config.Settings
}

// NewTick returns a minute tick event.
func NewTick(now time.Time) Event {
	return Event{Kind: Tick, Time: now}
}

// NewBattery returns a battery change event.
func NewBattery(now time.Time, s logic.BatteryState) Event {
	return Event{Kind: BatteryChanged, Time: now, Battery: s}
}

// NewConnectivity returns a connectivity change event.
func NewConnectivity(now time.Time, connected bool) Event {
	return Event{Kind: ConnectivityChanged, Time: now, Connected: connected}
}

// NewSettings returns a settings change event.
func NewSettings(now time.Time, s config.Settings) Event {
	return Event{Kind: SettingsChanged, Time: now, Settings: s}
}

// Handler receives events of the kind it subscribed to.
type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription struct {
	kind Kind
	id   uint64
}

// Kind returns the event kind the subscription receives.
func (s Subscription) Kind() Kind { return s.kind }

type entry struct {
	id uint64
	fn Handler
}

// Dispatcher routes events to handlers. Counters may be read from any
// goroutine.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[Kind][]entry
	queue    []Event
	next     uint64

	running    *atomic.Bool
	dispatched *atomic.Uint64
	delivered  *atomic.Uint64
	counts     [numKinds]*atomic.Uint64
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers:   make(map[Kind][]entry),
		running:    atomic.NewBool(false),
		dispatched: atomic.NewUint64(0),
		delivered:  atomic.NewUint64(0),
	}
	for i := range d.counts {
		d.counts[i] = atomic.NewUint64(0)
	}
	return d
}

// Subscribe registers fn for events of kind k.
func (d *Dispatcher) Subscribe(k Kind, fn Handler) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.handlers[k] = append(d.handlers[k], entry{id: d.next, fn: fn})
	return Subscription{kind: k, id: d.next}
}

// Unsubscribe removes a handler. Events already being delivered may
// still reach it; later events will not.
func (d *Dispatcher) Unsubscribe(s Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()
	hs := d.handlers[s.kind]
	for i, e := range hs {
		if e.id == s.id {
			d.handlers[s.kind] = append(hs[:i:i], hs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of handlers for kind k.
func (d *Dispatcher) Subscribers(k Kind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers[k])
}

// Dispatch delivers e to every handler subscribed to its kind. Called
// from inside a handler it only queues e.
func (d *Dispatcher) Dispatch(e Event) {
	d.mu.Lock()
	d.queue = append(d.queue, e)
	d.mu.Unlock()

	for d.running.CompareAndSwap(false, true) {
		d.drain()
		if d.Pending() == 0 {
			return
		}
	}
}

// Pending returns the number of queued, undelivered events.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Busy reports whether a handler is currently running.
func (d *Dispatcher) Busy() bool { return d.running.Load() }

// Dispatched returns the number of events taken off the queue.
func (d *Dispatcher) Dispatched() uint64 { return d.dispatched.Load() }

// Delivered returns the number of handler invocations.
func (d *Dispatcher) Delivered() uint64 { return d.delivered.Load() }

// Count returns the number of dispatched events of kind k.
func (d *Dispatcher) Count(k Kind) uint64 {
	if k < 0 || k >= numKinds {
		return 0
	}
	return d.counts[k].Load()
}

func (d *Dispatcher) drain() {
	defer d.running.Store(false)
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		e := d.queue[0]
		d.queue = d.queue[1:]
		hs := append([]entry(nil), d.handlers[e.Kind]...)
		d.mu.Unlock()

		d.dispatched.Inc()
		if e.Kind >= 0 && e.Kind < numKinds {
			d.counts[e.Kind].Inc()
		}
		for _, h := range hs {
			h.fn(e)
			d.delivered.Inc()
		}
	}
}
