package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

// File name constants for dataset storage.
const (
	activeDatasetFile  = "active-dataset.tlv"
	pendingDatasetFile = "pending-dataset.tlv"
)

// FileStore is a file-based implementation of the Store interface.
// Each role's blob is written to its own file in the base directory.
type FileStore struct {
	mu      sync.Mutex
	baseDir string
}

// NewFileStore creates a new file-based settings store.
// The base directory is created on the first save.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

func (s *FileStore) path(role dataset.Role) string {
	if role == dataset.RolePending {
		return filepath.Join(s.baseDir, pendingDatasetFile)
	}
	return filepath.Join(s.baseDir, activeDatasetFile)
}

// ReadDataset reads the dataset blob for a role from disk.
func (s *FileStore) ReadDataset(role dataset.Role) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(role))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := checkSize(data); err != nil {
		return nil, err
	}
	return data, nil
}

// SaveDataset writes the dataset blob for a role to disk.
// The file is replaced atomically so a crash never leaves a partial blob.
func (s *FileStore) SaveDataset(role dataset.Role, data []byte) error {
	if err := checkSize(data); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.baseDir, 0700); err != nil {
		return err
	}

	path := s.path(role)
	tmp, err := os.CreateTemp(s.baseDir, filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", role, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// DeleteDataset removes the dataset file for a role.
func (s *FileStore) DeleteDataset(role dataset.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(role))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// Compile-time interface satisfaction check.
var _ Store = (*FileStore)(nil)
