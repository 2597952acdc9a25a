// Package state provides small reusable stateful primitives: values backed by
// durable storage, interval counters, signal-driven trackers and
// cancellation-safe remote resources. Everything here is UI-agnostic; callers
// mutate through the public operations and read whatever state is exposed.
package state

import (
	"context"
	"encoding/json"
	"sync"

	"statelab/internal/storage"
	"statelab/pkg/logger"
)

// Persistent is a typed value backed by a storage key. The stored value is
// read once at construction; every Set/Update synchronously rewrites the full
// serialized snapshot. Persistence is best-effort: a failed write is logged
// and the in-memory value is kept.
type Persistent[T any] struct {
	backend storage.Backend
	key     string

	mu    sync.RWMutex
	value T
}

// NewPersistent loads the value stored under key, falling back to
// defaultValue when the key is absent or the stored payload does not parse.
func NewPersistent[T any](ctx context.Context, backend storage.Backend, key string, defaultValue T) *Persistent[T] {
	p := &Persistent[T]{backend: backend, key: key, value: defaultValue}
	raw, ok, err := backend.Read(ctx, key)
	if err != nil {
		logger.Warn(ctx, "Persistent read failed, using default", "key", key, "error", err)
		return p
	}
	if !ok {
		return p
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logger.Warn(ctx, "Persistent value unparseable, using default", "key", key, "error", err)
		return p
	}
	p.value = v
	return p
}

// Key returns the storage key this value is bound to.
func (p *Persistent[T]) Key() string { return p.key }

// Get returns the current in-memory value.
func (p *Persistent[T]) Get() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Set replaces the value and persists it under the key.
func (p *Persistent[T]) Set(ctx context.Context, v T) {
	p.Update(ctx, func(T) T { return v })
}

// Update applies fn to the previous value under the write lock, so callers
// never race against a stale read of the current value, then persists.
func (p *Persistent[T]) Update(ctx context.Context, fn func(prev T) T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = fn(p.value)
	p.persist(ctx)
}

// persist serializes the current value and writes it. Caller holds the lock,
// which keeps write order matching mutation order.
func (p *Persistent[T]) persist(ctx context.Context) {
	raw, err := json.Marshal(p.value)
	if err != nil {
		logger.Error(ctx, "Persistent marshal failed", "key", p.key, "error", err)
		return
	}
	if err := p.backend.Write(ctx, p.key, string(raw)); err != nil {
		logger.Error(ctx, "Persistent write failed", "key", p.key, "error", err)
	}
}
