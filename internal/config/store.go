package config

import (
	"sync"
)

// Subscription identifies a registered settings listener.
type Subscription uint64

// Store holds the current settings and notifies subscribers when they
// change. Listeners are called synchronously, outside the lock, in
// subscription order.
type Store struct {
	mu      sync.RWMutex
	current Settings
	next    Subscription
	subs    map[Subscription]func(Settings)
	order   []Subscription
}

// NewStore returns a Store holding initial.
func NewStore(initial Settings) *Store {
	return &Store{
		current: initial,
		subs:    make(map[Subscription]func(Settings)),
	}
}

// Current returns the stored settings.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to be called with every change.
func (s *Store) Subscribe(fn func(Settings)) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.subs[id] = fn
	s.order = append(s.order, id)
	return id
}

// Unsubscribe removes a listener. Unknown subscriptions are ignored.
func (s *Store) Unsubscribe(id Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[id]; !ok {
		return
	}
	delete(s.subs, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Subscribers returns the number of registered listeners.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Set replaces the settings and notifies listeners.
func (s *Store) Set(settings Settings) {
	s.mu.Lock()
	s.current = settings
	fns := s.listeners()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(settings)
	}
}

// Apply merges a JSON settings message into the current settings and
// notifies listeners. A malformed message leaves the settings unchanged.
func (s *Store) Apply(data []byte) (Settings, error) {
	merged, err := s.Current().Merge(data)
	if err != nil {
		return Settings{}, err
	}
	s.Set(merged)
	return merged, nil
}

func (s *Store) listeners() []func(Settings) {
	fns := make([]func(Settings), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	return fns
}
