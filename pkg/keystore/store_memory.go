package keystore

import (
	"bytes"
	"sync"
)

type memoryKey struct {
	attrs Attributes
	key   []byte
}

// MemoryStore is an in-memory implementation of the Store interface.
// Lifetime is recorded but not enforced; every key is lost with the process.
type MemoryStore struct {
	mu   sync.RWMutex
	keys map[Ref]memoryKey
}

// NewMemoryStore creates a new in-memory key store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		keys: make(map[Ref]memoryKey),
	}
}

// ImportKey stores a copy of key under ref.
func (s *MemoryStore) ImportKey(ref Ref, attrs Attributes, key []byte) error {
	if len(key) == 0 {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys[ref] = memoryKey{attrs: attrs, key: bytes.Clone(key)}
	return nil
}

// ExportKey copies the key stored under ref into out.
func (s *MemoryStore) ExportKey(ref Ref, out []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, exists := s.keys[ref]
	if !exists {
		return 0, ErrKeyNotFound
	}
	return exportTo(k.attrs, k.key, out)
}

// DestroyKey removes the key stored under ref.
func (s *MemoryStore) DestroyKey(ref Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, exists := s.keys[ref]
	if !exists {
		return ErrKeyNotFound
	}
	clear(k.key)
	delete(s.keys, ref)
	return nil
}

// HasKey reports whether a key is stored under ref.
func (s *MemoryStore) HasKey(ref Ref) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.keys[ref]
	return exists
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Compile-time interface satisfaction check.
var _ Store = (*MemoryStore)(nil)
