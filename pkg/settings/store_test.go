package settings

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

// storeFactories returns a fresh instance of every Store implementation.
func storeFactories(t *testing.T) map[string]func() Store {
	return map[string]func() Store{
		"MemoryStore": func() Store {
			return NewMemoryStore()
		},
		"FileStore": func() Store {
			return NewFileStore(filepath.Join(t.TempDir(), "settings"))
		},
		"LevelDBStore": func() Store {
			s, err := NewMemLevelDBStore()
			if err != nil {
				t.Fatalf("NewMemLevelDBStore() error = %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("ReadMissing", func(t *testing.T) {
				s := newStore()
				if _, err := s.ReadDataset(dataset.RoleActive); !errors.Is(err, ErrNotFound) {
					t.Errorf("ReadDataset() error = %v, want ErrNotFound", err)
				}
			})

			t.Run("SaveAndRead", func(t *testing.T) {
				s := newStore()
				blob := []byte{0x01, 0x02, 0xfa, 0xce}

				if err := s.SaveDataset(dataset.RoleActive, blob); err != nil {
					t.Fatalf("SaveDataset() error = %v", err)
				}
				got, err := s.ReadDataset(dataset.RoleActive)
				if err != nil {
					t.Fatalf("ReadDataset() error = %v", err)
				}
				if !bytes.Equal(got, blob) {
					t.Errorf("ReadDataset() = %x, want %x", got, blob)
				}
			})

			t.Run("RolesAreIndependent", func(t *testing.T) {
				s := newStore()
				_ = s.SaveDataset(dataset.RoleActive, []byte{0x01, 0x00})
				_ = s.SaveDataset(dataset.RolePending, []byte{0x03, 0x00})

				if err := s.DeleteDataset(dataset.RoleActive); err != nil {
					t.Fatalf("DeleteDataset() error = %v", err)
				}
				got, err := s.ReadDataset(dataset.RolePending)
				if err != nil {
					t.Fatalf("ReadDataset(Pending) error = %v", err)
				}
				if !bytes.Equal(got, []byte{0x03, 0x00}) {
					t.Errorf("ReadDataset(Pending) = %x", got)
				}
			})

			t.Run("Overwrite", func(t *testing.T) {
				s := newStore()
				_ = s.SaveDataset(dataset.RolePending, []byte{0x01, 0x00})
				_ = s.SaveDataset(dataset.RolePending, []byte{0x02, 0x01, 0x07})

				got, _ := s.ReadDataset(dataset.RolePending)
				if !bytes.Equal(got, []byte{0x02, 0x01, 0x07}) {
					t.Errorf("ReadDataset() = %x after overwrite", got)
				}
			})

			t.Run("DeleteMissing", func(t *testing.T) {
				s := newStore()
				if err := s.DeleteDataset(dataset.RolePending); !errors.Is(err, ErrNotFound) {
					t.Errorf("DeleteDataset() error = %v, want ErrNotFound", err)
				}
			})

			t.Run("RejectOversize", func(t *testing.T) {
				s := newStore()
				err := s.SaveDataset(dataset.RoleActive, make([]byte, dataset.MaxSize+1))
				if !errors.Is(err, ErrInvalidArgs) {
					t.Errorf("SaveDataset() error = %v, want ErrInvalidArgs", err)
				}
			})

			t.Run("ReturnedBlobIsACopy", func(t *testing.T) {
				s := newStore()
				_ = s.SaveDataset(dataset.RoleActive, []byte{0x01, 0x01, 0xaa})

				got, _ := s.ReadDataset(dataset.RoleActive)
				got[2] = 0xbb

				again, _ := s.ReadDataset(dataset.RoleActive)
				if again[2] != 0xaa {
					t.Error("mutating a returned blob changed the stored value")
				}
			})
		})
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "node")
	blob := []byte{0x0e, 0x08, 0, 0, 0, 0, 0, 1, 0, 0}

	if err := NewFileStore(dir).SaveDataset(dataset.RoleActive, blob); err != nil {
		t.Fatalf("SaveDataset() error = %v", err)
	}

	got, err := NewFileStore(dir).ReadDataset(dataset.RoleActive)
	if err != nil {
		t.Fatalf("ReadDataset() error = %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("ReadDataset() = %x, want %x", got, blob)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestFileStoreRejectsOversizeFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, activeDatasetFile), make([]byte, dataset.MaxSize+1), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore(dir).ReadDataset(dataset.RoleActive)
	if !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("ReadDataset() error = %v, want ErrInvalidArgs", err)
	}
}

func TestLevelDBStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	s, err := OpenLevelDBStore(path)
	if err != nil {
		t.Fatalf("OpenLevelDBStore() error = %v", err)
	}
	if err := s.SaveDataset(dataset.RolePending, []byte{0x34, 0x04, 0, 0, 0x75, 0x30}); err != nil {
		t.Fatalf("SaveDataset() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = OpenLevelDBStore(path)
	if err != nil {
		t.Fatalf("OpenLevelDBStore() reopen error = %v", err)
	}
	defer func() { _ = s.Close() }()

	got, err := s.ReadDataset(dataset.RolePending)
	if err != nil {
		t.Fatalf("ReadDataset() error = %v", err)
	}
	if !bytes.Equal(got, []byte{0x34, 0x04, 0, 0, 0x75, 0x30}) {
		t.Errorf("ReadDataset() = %x", got)
	}
}

func TestDatasetKey(t *testing.T) {
	if DatasetKey(dataset.RoleActive) != KeyActiveDataset {
		t.Error("Active role should map to KeyActiveDataset")
	}
	if DatasetKey(dataset.RolePending) != KeyPendingDataset {
		t.Error("Pending role should map to KeyPendingDataset")
	}
	if KeyPendingDataset.String() != "PendingDataset" {
		t.Errorf("String() = %q", KeyPendingDataset.String())
	}
}
