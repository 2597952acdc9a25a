package state

// Cell is a single-writer, multi-reader broadcast cell: one owner mutates
// through Set, any number of readers observe through Get or Subscribe. It is
// an explicit object passed by reference to its consumers, not ambient global
// state; the owner decides its lifetime.
type Cell[T any] struct {
	sig *Signal[T]
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{sig: NewSignal(initial)}
}

// Get returns the current value.
func (c *Cell[T]) Get() T { return c.sig.Get() }

// Set replaces the value and notifies subscribers. Only the owning component
// should call Set.
func (c *Cell[T]) Set(v T) { c.sig.Emit(v) }

// Subscribe registers fn for future values and returns an unsubscribe handle.
func (c *Cell[T]) Subscribe(fn func(T)) func() { return c.sig.Subscribe(fn) }
