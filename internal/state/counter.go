package state

import (
	"sync"
	"time"
)

// Counter increments once per tick interval while running. Start is
// idempotent, Pause keeps the current value, Reset restores the initial value
// from any state. A paused or closed counter holds no timer resources, and no
// increment lands after Pause, Reset or Close returns.
type Counter struct {
	interval time.Duration
	initial  int64

	mu     sync.Mutex
	value  int64
	stop   chan struct{} // non-nil while running
	done   chan struct{} // closed by the tick goroutine on exit
	closed bool
}

// NewCounter creates a stopped counter starting at initial.
func NewCounter(interval time.Duration, initial int64) *Counter {
	return &Counter{interval: interval, initial: initial, value: initial}
}

// Value returns the current count.
func (c *Counter) Value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Start begins ticking. Calling Start while already running is a no-op, so
// at most one tick source is ever active per counter.
func (c *Counter) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(c.stop, c.done)
}

func (c *Counter) run(stop, done chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(done)
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.value++
			c.mu.Unlock()
		case <-stop:
			return
		}
	}
}

// Pause halts ticking and retains the current value. It does not return
// until the tick goroutine has exited.
func (c *Counter) Pause() {
	c.mu.Lock()
	if c.stop == nil {
		c.mu.Unlock()
		return
	}
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	close(stop)
	<-done
}

// Reset stops ticking if needed and restores the initial value.
func (c *Counter) Reset() {
	c.Pause()
	c.mu.Lock()
	c.value = c.initial
	c.mu.Unlock()
}

// Close releases the tick source permanently. Subsequent Start calls are
// no-ops. Close is idempotent.
func (c *Counter) Close() {
	c.Pause()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
