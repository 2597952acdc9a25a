package state

import (
	"testing"
	"time"
)

const tick = 10 * time.Millisecond

func waitForValue(t *testing.T, c *Counter, want int64) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if c.Value() >= want {
			return
		}
		time.Sleep(tick / 2)
	}
	t.Fatalf("counter did not reach %d (at %d)", want, c.Value())
}

func TestCounterStartPause(t *testing.T) {
	c := NewCounter(tick, 0)
	defer c.Close()

	c.Start()
	waitForValue(t, c, 3)
	c.Pause()

	v := c.Value()
	time.Sleep(3 * tick)
	if got := c.Value(); got != v {
		t.Errorf("counter advanced while paused: %d -> %d", v, got)
	}
}

func TestCounterResume(t *testing.T) {
	c := NewCounter(tick, 0)
	defer c.Close()

	c.Start()
	waitForValue(t, c, 2)
	c.Pause()
	v := c.Value()

	c.Start()
	waitForValue(t, c, v+1)
}

func TestCounterReset(t *testing.T) {
	c := NewCounter(tick, 5)
	defer c.Close()

	if got := c.Value(); got != 5 {
		t.Fatalf("expected initial 5, got %d", got)
	}
	c.Start()
	waitForValue(t, c, 7)
	c.Reset()
	if got := c.Value(); got != 5 {
		t.Errorf("expected reset to 5, got %d", got)
	}
	time.Sleep(3 * tick)
	if got := c.Value(); got != 5 {
		t.Errorf("reset counter must stay stopped, got %d", got)
	}

	// Reset while already stopped is also fine.
	c.Reset()
	if got := c.Value(); got != 5 {
		t.Errorf("expected 5 after second reset, got %d", got)
	}
}

func TestCounterStartIdempotent(t *testing.T) {
	c := NewCounter(tick, 0)
	defer c.Close()

	start := time.Now()
	c.Start()
	c.Start()
	c.Start()
	time.Sleep(10 * tick)
	c.Pause()
	elapsed := time.Since(start)

	// A single ticker can produce at most elapsed/interval ticks (plus one
	// for scheduling slack); duplicated tick sources would double that.
	maxTicks := int64(elapsed/tick) + 1
	if got := c.Value(); got > maxTicks {
		t.Errorf("counter ticked %d times in %v; extra tick source suspected (max %d)", got, elapsed, maxTicks)
	}
}

func TestCounterCloseStopsTicks(t *testing.T) {
	c := NewCounter(tick, 0)
	c.Start()
	waitForValue(t, c, 1)
	c.Close()

	v := c.Value()
	time.Sleep(3 * tick)
	if got := c.Value(); got != v {
		t.Errorf("counter advanced after Close: %d -> %d", v, got)
	}

	c.Start() // no-op after Close
	time.Sleep(3 * tick)
	if got := c.Value(); got != v {
		t.Errorf("Start after Close must not tick: %d -> %d", v, got)
	}
}
