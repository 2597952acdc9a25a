package state

import "testing"

func TestViewportCapturesInitialSize(t *testing.T) {
	resize := NewSignal(Size{Width: 800, Height: 600})
	v := NewViewport(resize)
	defer v.Close()

	if got := v.Size(); got != (Size{800, 600}) {
		t.Errorf("expected immediate capture of current size, got %+v", got)
	}
}

func TestViewportTracksResizes(t *testing.T) {
	resize := NewSignal(Size{Width: 800, Height: 600})
	v := NewViewport(resize)
	defer v.Close()

	resize.Emit(Size{Width: 1024, Height: 768})
	if got := v.Size(); got != (Size{1024, 768}) {
		t.Errorf("expected updated size, got %+v", got)
	}
}

func TestViewportCloseDeregisters(t *testing.T) {
	resize := NewSignal(Size{Width: 800, Height: 600})
	v := NewViewport(resize)

	v.Close()
	v.Close() // idempotent
	resize.Emit(Size{Width: 1, Height: 1})
	if got := v.Size(); got != (Size{800, 600}) {
		t.Errorf("size changed after Close: %+v", got)
	}

	// Re-instantiation gets exactly one live listener, not a leaked pair.
	v2 := NewViewport(resize)
	defer v2.Close()
	resize.Emit(Size{Width: 640, Height: 480})
	if got := v2.Size(); got != (Size{640, 480}) {
		t.Errorf("new viewport missed resize: %+v", got)
	}
}
