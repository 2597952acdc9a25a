package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 100 * time.Millisecond

// File is a Backend storing one file per key under a directory, guarded by a
// directory-level lock file so concurrent processes do not interleave writes.
type File struct {
	dir      string
	fileLock *flock.Flock
}

// NewFile creates the directory if needed and returns a file-backed store.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &File{
		dir:      dir,
		fileLock: flock.New(filepath.Join(dir, ".lock")),
	}, nil
}

func (f *File) Read(ctx context.Context, key string) (string, bool, error) {
	unlock, err := f.lock(ctx)
	if err != nil {
		return "", false, err
	}
	defer unlock()

	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return string(data), true, nil
}

func (f *File) Write(ctx context.Context, key, value string) error {
	unlock, err := f.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	// Write to a temp file and rename so readers never see a torn snapshot.
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %q: %w", key, err)
	}
	return nil
}

func (f *File) Close() error { return nil }

func (f *File) lock(ctx context.Context) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	locked, err := f.fileLock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		cancel()
		return nil, fmt.Errorf("could not acquire file lock")
	}
	return func() {
		_ = f.fileLock.Unlock()
		cancel()
	}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, sanitize(key)+".json")
}

// sanitize maps a storage key to a safe file name.
func sanitize(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
