package state

import (
	"context"
	"errors"
	"testing"

	"statelab/internal/storage"
)

func TestPersistentDefaultWhenAbsent(t *testing.T) {
	ctx := context.Background()
	p := NewPersistent(ctx, storage.NewMemory(), "count", 42)
	if got := p.Get(); got != 42 {
		t.Errorf("expected default 42, got %d", got)
	}
}

func TestPersistentRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()

	p := NewPersistent(ctx, backend, "count", 0)
	p.Set(ctx, 7)

	// A fresh instance over the same backend must see the stored value, not
	// the caller's default.
	p2 := NewPersistent(ctx, backend, "count", 99)
	if got := p2.Get(); got != 7 {
		t.Errorf("expected stored 7, got %d", got)
	}
}

func TestPersistentUnparseableFallsBack(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	if err := backend.Write(ctx, "count", "{not json"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	p := NewPersistent(ctx, backend, "count", 5)
	if got := p.Get(); got != 5 {
		t.Errorf("expected default on parse failure, got %d", got)
	}
}

func TestPersistentUpdater(t *testing.T) {
	ctx := context.Background()
	p := NewPersistent(ctx, storage.NewMemory(), "count", 10)
	p.Update(ctx, func(prev int) int { return prev + 1 })
	p.Update(ctx, func(prev int) int { return prev + 1 })
	if got := p.Get(); got != 12 {
		t.Errorf("expected 12, got %d", got)
	}
}

// failingBackend accepts the initial read and rejects every write.
type failingBackend struct{}

func (failingBackend) Read(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}
func (failingBackend) Write(ctx context.Context, key, value string) error {
	return errors.New("disk full")
}
func (failingBackend) Close() error { return nil }

func TestPersistentWriteFailureKeepsMemoryValue(t *testing.T) {
	ctx := context.Background()
	p := NewPersistent[string](ctx, failingBackend{}, "k", "default")
	p.Set(ctx, "updated")
	if got := p.Get(); got != "updated" {
		t.Errorf("in-memory value must update despite write failure, got %q", got)
	}
}

func TestPersistentStructValue(t *testing.T) {
	type prefs struct {
		Theme string `json:"theme"`
		Size  int    `json:"size"`
	}
	ctx := context.Background()
	backend := storage.NewMemory()

	p := NewPersistent(ctx, backend, "prefs", prefs{Theme: "light"})
	p.Set(ctx, prefs{Theme: "dark", Size: 14})

	p2 := NewPersistent(ctx, backend, "prefs", prefs{})
	if got := p2.Get(); got.Theme != "dark" || got.Size != 14 {
		t.Errorf("unexpected stored prefs: %+v", got)
	}
}
