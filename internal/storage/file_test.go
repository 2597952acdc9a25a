package storage

import (
	"context"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer func() { _ = f.Close() }()

	if _, ok, err := f.Read(ctx, "todos"); err != nil || ok {
		t.Fatalf("expected absent before write: ok=%v err=%v", ok, err)
	}
	if err := f.Write(ctx, "todos", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	v, ok, err := f.Read(ctx, "todos")
	if err != nil || !ok {
		t.Fatalf("Read failed: ok=%v err=%v", ok, err)
	}
	if v != `[{"id":"1"}]` {
		t.Errorf("unexpected value %q", v)
	}
}

func TestFileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	f, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if err := f.Write(ctx, "k", "durable"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	_ = f.Close()

	f2, err := NewFile(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = f2.Close() }()
	v, ok, err := f2.Read(ctx, "k")
	if err != nil || !ok || v != "durable" {
		t.Errorf("expected value to survive reopen, got ok=%v v=%q err=%v", ok, v, err)
	}
}

func TestFileKeySanitization(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer func() { _ = f.Close() }()

	key := "weird/key with:chars"
	if err := f.Write(ctx, key, "v"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	v, ok, err := f.Read(ctx, key)
	if err != nil || !ok || v != "v" {
		t.Errorf("sanitized key round trip failed: ok=%v v=%q err=%v", ok, v, err)
	}
}
