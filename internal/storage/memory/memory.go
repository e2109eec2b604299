package memory

import (
	"context"
	"sync"

	"discipline/internal/storage"
)

// Slot keeps values in process memory. Values are copied in and out so
// callers cannot alias stored bytes.
type Slot struct {
	mu     sync.Mutex
	values map[string][]byte
}

func New() *Slot {
	return &Slot{values: make(map[string][]byte)}
}

// Get returns a copy of the value under key.
func (s *Slot) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value under key.
func (s *Slot) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (s *Slot) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
