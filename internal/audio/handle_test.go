package audio

import (
	"bytes"
	"errors"
	"os"
	"testing"
)

func TestNewHandle(t *testing.T) {
	dir := t.TempDir()
	data := []byte{0xFF, 0xFB, 0x90, 0x00, 0x01}

	h, err := NewHandle(data, dir)
	if err != nil {
		t.Fatalf("NewHandle() error = %v", err)
	}

	if h.ID() == "" {
		t.Error("expected non-empty ID")
	}
	if h.Size() != len(data) {
		t.Errorf("Size() = %d, want %d", h.Size(), len(data))
	}
	if h.MIMEType() != "audio/mpeg" {
		t.Errorf("MIMEType() = %s", h.MIMEType())
	}
	if h.RefCount() != 1 {
		t.Errorf("RefCount() = %d, want 1", h.RefCount())
	}

	got, err := h.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Bytes() = %v, want %v", got, data)
	}
}

func TestNewHandleEmpty(t *testing.T) {
	if _, err := NewHandle(nil, t.TempDir()); err == nil {
		t.Error("expected error for empty audio data")
	}
}

func TestHandleUniqueIDs(t *testing.T) {
	dir := t.TempDir()
	a, _ := NewHandle([]byte{1}, dir)
	b, _ := NewHandle([]byte{1}, dir)
	if a.ID() == b.ID() || a.Path() == b.Path() {
		t.Error("expected distinct handles")
	}
}

func TestHandleReleaseRemovesFile(t *testing.T) {
	h, err := NewHandle([]byte{1, 2, 3}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(h.Path()); err != nil {
		t.Fatalf("backing file missing: %v", err)
	}

	if err := h.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if !h.Released() {
		t.Error("expected handle to be released")
	}
	if _, err := os.Stat(h.Path()); !os.IsNotExist(err) {
		t.Error("expected backing file to be removed")
	}

	if err := h.Release(); !errors.Is(err, ErrReleased) {
		t.Errorf("second Release() error = %v, want ErrReleased", err)
	}
	if _, err := h.Bytes(); !errors.Is(err, ErrReleased) {
		t.Errorf("Bytes() after release error = %v, want ErrReleased", err)
	}
	if err := h.Retain(); !errors.Is(err, ErrReleased) {
		t.Errorf("Retain() after release error = %v, want ErrReleased", err)
	}
}

func TestHandleRetainKeepsFile(t *testing.T) {
	h, err := NewHandle([]byte{1, 2, 3}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := h.Retain(); err != nil {
		t.Fatal(err)
	}
	if h.RefCount() != 2 {
		t.Errorf("RefCount() = %d, want 2", h.RefCount())
	}

	h.Release()
	if _, err := os.Stat(h.Path()); err != nil {
		t.Error("file removed while still referenced")
	}

	h.Release()
	if _, err := os.Stat(h.Path()); !os.IsNotExist(err) {
		t.Error("file not removed after last release")
	}
}
