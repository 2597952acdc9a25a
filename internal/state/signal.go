package state

import "sync"

// Signal is a subscribable event source that retains its latest value, the
// shape the host environment's resize/tick sources are adapted into. Emit
// notifies every live subscriber exactly once per call.
type Signal[T any] struct {
	mu   sync.Mutex
	last T
	next int
	subs map[int]func(T)
}

// NewSignal creates a signal whose current value is initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{last: initial, subs: make(map[int]func(T))}
}

// Get returns the most recently emitted value (or the initial one).
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Subscribe registers fn for future emissions and returns its unsubscribe
// handle. Unsubscribing twice is harmless; fn is never called after the
// handle runs.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Emit records v as the current value and invokes every subscriber once.
// Invocation order is unspecified. Callbacks run outside the signal's lock,
// so they may subscribe or unsubscribe freely.
func (s *Signal[T]) Emit(v T) {
	s.mu.Lock()
	s.last = v
	fns := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}
