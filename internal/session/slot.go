package session

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"
)

// Slot is the single durable storage cell holding the serialized identity
// record. One key, one value; a new login overwrites the prior value
// unconditionally. The Store is the only writer.
type Slot interface {
	// Load returns the stored record. ok is false when the slot is empty,
	// which is the normal unauthenticated state, not an error.
	Load(ctx context.Context) (value []byte, ok bool, err error)
	// Store overwrites the slot with the given record.
	Store(ctx context.Context, value []byte) error
	// Clear empties the slot. Clearing an empty slot is a no-op.
	Clear(ctx context.Context) error
}

// MemorySlot is an in-memory Slot for tests and ephemeral sessions.
type MemorySlot struct {
	mu    sync.Mutex
	value []byte
	set   bool
}

// NewMemorySlot creates an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Load returns the stored value.
func (s *MemorySlot) Load(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, false, nil
	}
	v := make([]byte, len(s.value))
	copy(v, s.value)
	return v, true, nil
}

// Store overwrites the stored value.
func (s *MemorySlot) Store(_ context.Context, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = make([]byte, len(value))
	copy(s.value, value)
	s.set = true
	return nil
}

// Clear empties the slot.
func (s *MemorySlot) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = nil
	s.set = false
	return nil
}

// FileSlot persists the record to a single file on disk.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot backed by the given file path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Load reads the record file. A missing file means an empty slot.
func (s *FileSlot) Load(_ context.Context) ([]byte, bool, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

// Store overwrites the record file.
func (s *FileSlot) Store(_ context.Context, value []byte) error {
	return os.WriteFile(s.path, value, 0o600)
}

// Clear removes the record file if present.
func (s *FileSlot) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
