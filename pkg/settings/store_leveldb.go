package settings

import (
	"encoding/binary"
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

// keyPrefix namespaces dataset settings inside a shared database.
var keyPrefix = []byte("settings/")

// LevelDBStore is a LevelDB-backed implementation of the Store interface.
// Settings are stored under "settings/" followed by the big-endian key.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDBStore opens (or creates) a LevelDB database at path.
func OpenLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{
		// Dataset blobs are small; compression buys nothing.
		Compression: opt.NoCompression,
	})
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

// NewMemLevelDBStore creates a LevelDB store backed by memory storage.
func NewMemLevelDBStore() (*LevelDBStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

func dbKey(key Key) []byte {
	return binary.BigEndian.AppendUint16(append([]byte(nil), keyPrefix...), uint16(key))
}

// ReadDataset returns the dataset blob for a role.
func (s *LevelDBStore) ReadDataset(role dataset.Role) ([]byte, error) {
	data, err := s.db.Get(dbKey(DatasetKey(role)), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
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

// SaveDataset stores the dataset blob for a role with a synced write.
func (s *LevelDBStore) SaveDataset(role dataset.Role, data []byte) error {
	if err := checkSize(data); err != nil {
		return err
	}
	return s.db.Put(dbKey(DatasetKey(role)), data, &opt.WriteOptions{Sync: true})
}

// DeleteDataset removes the dataset blob for a role.
func (s *LevelDBStore) DeleteDataset(role dataset.Role) error {
	key := dbKey(DatasetKey(role))

	exists, err := s.db.Has(key, nil)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return s.db.Delete(key, &opt.WriteOptions{Sync: true})
}

// Close closes the underlying database.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

// Compile-time interface satisfaction check.
var _ Store = (*LevelDBStore)(nil)
