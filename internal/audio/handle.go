package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// MIMETypeMPEG is the content type of all synthesized audio
const MIMETypeMPEG = "audio/mpeg"

// ErrReleased is returned when a released handle is used
var ErrReleased = errors.New("audio handle already released")

// Handle is a revocable reference to synthesized audio bytes. The bytes
// live in a temporary file so external players can open them; the file
// is removed once the last reference is released.
type Handle struct {
	id       string
	path     string
	size     int
	mimeType string

	mu   sync.Mutex
	refs int
}

// NewHandle writes data to a new temporary file in dir and returns a
// handle holding one reference. An empty dir means os.TempDir().
func NewHandle(data []byte, dir string) (*Handle, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data")
	}
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(dir, "localtranslator-"+id+".mp3")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write audio file: %w", err)
	}

	return &Handle{
		id:       id,
		path:     path,
		size:     len(data),
		mimeType: MIMETypeMPEG,
		refs:     1,
	}, nil
}

// ID returns the unique handle identifier
func (h *Handle) ID() string { return h.id }

// Path returns the backing file path
func (h *Handle) Path() string { return h.path }

// Size returns the number of audio bytes
func (h *Handle) Size() int { return h.size }

// MIMEType returns the audio content type
func (h *Handle) MIMEType() string { return h.mimeType }

// Bytes reads the audio bytes back
func (h *Handle) Bytes() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.refs == 0 {
		return nil, ErrReleased
	}
	return os.ReadFile(h.path)
}

// Retain adds a reference, e.g. while the audio is playing
func (h *Handle) Retain() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.refs == 0 {
		return ErrReleased
	}
	h.refs++
	return nil
}

// Release drops a reference. The backing file is deleted when the
// count reaches zero.
func (h *Handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.refs == 0 {
		return ErrReleased
	}
	h.refs--
	if h.refs > 0 {
		return nil
	}

	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove audio file: %w", err)
	}
	return nil
}

// RefCount returns the current number of references
func (h *Handle) RefCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refs
}

// Released reports whether every reference has been dropped
func (h *Handle) Released() bool {
	return h.RefCount() == 0
}
