package state

import "testing"

func TestSignalEmitNotifiesSubscribers(t *testing.T) {
	s := NewSignal(0)
	var seen []int
	unsub := s.Subscribe(func(v int) { seen = append(seen, v) })

	s.Emit(1)
	s.Emit(2)
	unsub()
	unsub() // harmless
	s.Emit(3)

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("unexpected notifications: %v", seen)
	}
	if got := s.Get(); got != 3 {
		t.Errorf("latest value should be 3, got %d", got)
	}
}

func TestCellBroadcast(t *testing.T) {
	theme := NewCell("light")
	if got := theme.Get(); got != "light" {
		t.Fatalf("expected initial value, got %q", got)
	}

	var a, b string
	unsubA := theme.Subscribe(func(v string) { a = v })
	defer unsubA()
	unsubB := theme.Subscribe(func(v string) { b = v })

	theme.Set("dark")
	if a != "dark" || b != "dark" {
		t.Errorf("subscribers not notified: a=%q b=%q", a, b)
	}

	unsubB()
	theme.Set("light")
	if a != "light" {
		t.Errorf("live subscriber missed update: %q", a)
	}
	if b != "dark" {
		t.Errorf("unsubscribed reader was notified: %q", b)
	}
}
