package settings

import (
	"bytes"
	"sync"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

// MemoryStore is an in-memory implementation of the Store interface.
// This is primarily useful for testing and nodes that don't need persistence.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[Key][]byte
}

// NewMemoryStore creates a new in-memory settings store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[Key][]byte),
	}
}

// ReadDataset returns the dataset blob for a role.
func (s *MemoryStore) ReadDataset(role dataset.Role) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.blobs[DatasetKey(role)]
	if !exists {
		return nil, ErrNotFound
	}
	return bytes.Clone(data), nil
}

// SaveDataset stores the dataset blob for a role.
func (s *MemoryStore) SaveDataset(role dataset.Role, data []byte) error {
	if err := checkSize(data); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[DatasetKey(role)] = bytes.Clone(data)
	return nil
}

// DeleteDataset removes the dataset blob for a role.
func (s *MemoryStore) DeleteDataset(role dataset.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := DatasetKey(role)
	if _, exists := s.blobs[key]; !exists {
		return ErrNotFound
	}
	delete(s.blobs, key)
	return nil
}

// Compile-time interface satisfaction check.
var _ Store = (*MemoryStore)(nil)
