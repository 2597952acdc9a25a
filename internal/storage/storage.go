// Package storage provides the durable key/value substrate behind persisted
// state. Values are serialized text addressed by string keys; the whole
// serialized snapshot is rewritten on every write. Backends exist for memory,
// JSON files, bbolt, Redis and Postgres, all behind the same interface.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends after Close.
var ErrClosed = errors.New("storage: backend closed")

// Backend is the durable key/value store contract. Read reports absence via
// the second return rather than an error; errors are reserved for host
// failures (I/O, connectivity). At most one logical owner per key is assumed;
// concurrent same-key writers race at last-write-wins granularity.
type Backend interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
	Close() error
}
