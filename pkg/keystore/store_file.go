package keystore

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// FileStore errors.
var (
	ErrCorruptRecord = errors.New("corrupt key record")
	ErrNoSecret      = errors.New("master secret required")
)

// sealInfo is the HKDF info string for the record sealing key.
var sealInfo = []byte("mash-keystore record seal v1")

// recordVersion is the current key record format version.
const recordVersion = 1

// keyRecord is the CBOR envelope written for each persistent key.
type keyRecord struct {
	Version uint8      `cbor:"1,keyasint"`
	Ref     Ref        `cbor:"2,keyasint"`
	Attrs   Attributes `cbor:"3,keyasint"`
	Nonce   []byte     `cbor:"4,keyasint"`
	Sealed  []byte     `cbor:"5,keyasint"`
}

var recordEncMode cbor.EncMode

func init() {
	var err error
	recordEncMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create key record CBOR encoder mode: %v", err))
	}
}

// FileStore is a file-based implementation of the Store interface.
// Persistent keys are sealed and written to baseDir, one file per Ref;
// volatile keys are held in memory only.
type FileStore struct {
	mu       sync.Mutex
	baseDir  string
	aead     aeadSealer
	volatile *MemoryStore
}

// aeadSealer is the subset of cipher.AEAD used by FileStore.
type aeadSealer interface {
	NonceSize() int
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
}

// NewFileStore creates a file-based key store rooted at baseDir.
// The record sealing key is derived from secret with HKDF-SHA256, so the
// same secret must be supplied on every start.
func NewFileStore(baseDir string, secret []byte) (*FileStore, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}

	sealKey := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, sealInfo), sealKey); err != nil {
		return nil, fmt.Errorf("derive seal key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(sealKey)
	if err != nil {
		return nil, err
	}

	return &FileStore{
		baseDir:  baseDir,
		aead:     aead,
		volatile: NewMemoryStore(),
	}, nil
}

func (s *FileStore) path(ref Ref) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("key-%08x.cbor", uint32(ref)))
}

// additionalData binds a sealed record to its Ref and attributes.
func additionalData(ref Ref, attrs Attributes) []byte {
	ad := binary.BigEndian.AppendUint32(nil, uint32(ref))
	return append(ad, byte(attrs.Type), byte(attrs.Algorithm), byte(attrs.Usage), byte(attrs.Lifetime))
}

// ImportKey stores key under ref. Persistent keys are sealed to disk.
func (s *FileStore) ImportKey(ref Ref, attrs Attributes, key []byte) error {
	if len(key) == 0 {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if attrs.Lifetime != LifetimePersistent {
		_ = s.removeFile(ref)
		return s.volatile.ImportKey(ref, attrs, key)
	}
	_ = s.volatile.DestroyKey(ref)

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}

	rec := keyRecord{
		Version: recordVersion,
		Ref:     ref,
		Attrs:   attrs,
		Nonce:   nonce,
		Sealed:  s.aead.Seal(nil, nonce, key, additionalData(ref, attrs)),
	}
	data, err := recordEncMode.Marshal(rec)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.baseDir, 0700); err != nil {
		return err
	}
	return writeFileAtomic(s.path(ref), data)
}

// ExportKey copies the key stored under ref into out.
func (s *FileStore) ExportKey(ref Ref, out []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, err := s.volatile.ExportKey(ref, out); !errors.Is(err, ErrKeyNotFound) {
		return n, err
	}

	attrs, key, err := s.load(ref)
	if err != nil {
		return 0, err
	}
	defer clear(key)

	return exportTo(attrs, key, out)
}

// DestroyKey removes the key stored under ref.
func (s *FileStore) DestroyKey(ref Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	volatileErr := s.volatile.DestroyKey(ref)
	fileErr := s.removeFile(ref)

	if errors.Is(volatileErr, ErrKeyNotFound) && errors.Is(fileErr, ErrKeyNotFound) {
		return ErrKeyNotFound
	}
	if fileErr != nil && !errors.Is(fileErr, ErrKeyNotFound) {
		return fileErr
	}
	return nil
}

// HasKey reports whether a key is stored under ref.
func (s *FileStore) HasKey(ref Ref) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.volatile.HasKey(ref) {
		return true
	}
	_, err := os.Stat(s.path(ref))
	return err == nil
}

func (s *FileStore) removeFile(ref Ref) error {
	err := os.Remove(s.path(ref))
	if os.IsNotExist(err) {
		return ErrKeyNotFound
	}
	return err
}

func (s *FileStore) load(ref Ref) (Attributes, []byte, error) {
	data, err := os.ReadFile(s.path(ref))
	if os.IsNotExist(err) {
		return Attributes{}, nil, ErrKeyNotFound
	}
	if err != nil {
		return Attributes{}, nil, err
	}

	var rec keyRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return Attributes{}, nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if rec.Version != recordVersion || rec.Ref != ref {
		return Attributes{}, nil, fmt.Errorf("%w: version %d ref %s", ErrCorruptRecord, rec.Version, rec.Ref)
	}
	if len(rec.Nonce) != s.aead.NonceSize() {
		return Attributes{}, nil, fmt.Errorf("%w: nonce length %d", ErrCorruptRecord, len(rec.Nonce))
	}

	key, err := s.aead.Open(nil, rec.Nonce, rec.Sealed, additionalData(ref, rec.Attrs))
	if err != nil {
		return Attributes{}, nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return rec.Attrs, key, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
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

// Compile-time interface satisfaction check.
var _ Store = (*FileStore)(nil)
