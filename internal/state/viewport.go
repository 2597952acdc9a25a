package state

import "sync"

// Size is a width/height pair.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Viewport tracks the latest known dimensions from a resize signal. The
// current size is captured at construction, not only on the first resize.
type Viewport struct {
	mu   sync.RWMutex
	size Size

	unsubscribe func()
	once        sync.Once
}

// NewViewport captures the signal's current size and subscribes for updates.
// Call Close when done or the listener leaks across re-instantiation.
func NewViewport(resize *Signal[Size]) *Viewport {
	v := &Viewport{size: resize.Get()}
	v.unsubscribe = resize.Subscribe(func(s Size) {
		v.mu.Lock()
		v.size = s
		v.mu.Unlock()
	})
	return v
}

// Size returns the latest known dimensions.
func (v *Viewport) Size() Size {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.size
}

// Close deregisters the resize listener. Idempotent; no recomputation
// happens after Close returns.
func (v *Viewport) Close() {
	v.once.Do(v.unsubscribe)
}
