package keystore

import (
	"errors"
	"fmt"
)

// Key store errors.
var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrNotExportable  = errors.New("key is not exportable")
	ErrBufferTooSmall = errors.New("output buffer too small")
	ErrInvalidKey     = errors.New("invalid key")
)

// Ref names a key slot in the store.
type Ref uint32

// String returns the reference in hex.
func (r Ref) String() string {
	return fmt.Sprintf("0x%08x", uint32(r))
}

// KeyType identifies the kind of key material.
type KeyType uint8

const (
	// KeyTypeRaw is opaque key material with no algorithm binding.
	KeyTypeRaw KeyType = 0

	// KeyTypeAES is an AES key.
	KeyTypeAES KeyType = 1

	// KeyTypeHMAC is an HMAC key.
	KeyTypeHMAC KeyType = 2
)

// String returns the key type name.
func (t KeyType) String() string {
	switch t {
	case KeyTypeRaw:
		return "RAW"
	case KeyTypeAES:
		return "AES"
	case KeyTypeHMAC:
		return "HMAC"
	default:
		return "UNKNOWN"
	}
}

// Algorithm identifies what the key may be used with.
type Algorithm uint8

const (
	// AlgorithmVendor leaves the algorithm to the key's owner.
	AlgorithmVendor Algorithm = 0

	// AlgorithmAESECB is AES in ECB mode.
	AlgorithmAESECB Algorithm = 1

	// AlgorithmHMACSHA256 is HMAC with SHA-256.
	AlgorithmHMACSHA256 Algorithm = 2
)

// Usage is a bit set of permitted key operations.
type Usage uint8

const (
	// UsageExport permits ExportKey.
	UsageExport Usage = 1 << 0

	// UsageEncrypt permits encryption.
	UsageEncrypt Usage = 1 << 1

	// UsageDecrypt permits decryption.
	UsageDecrypt Usage = 1 << 2

	// UsageSignHash permits signing.
	UsageSignHash Usage = 1 << 3
)

// Has reports whether all bits in u2 are set.
func (u Usage) Has(u2 Usage) bool {
	return u&u2 == u2
}

// Lifetime selects whether a key survives restarts.
type Lifetime uint8

const (
	// LifetimeVolatile keys are lost on restart.
	LifetimeVolatile Lifetime = 0

	// LifetimePersistent keys are kept in non-volatile storage.
	LifetimePersistent Lifetime = 1
)

// Attributes describe an imported key.
type Attributes struct {
	Type      KeyType   `cbor:"1,keyasint"`
	Algorithm Algorithm `cbor:"2,keyasint"`
	Usage     Usage     `cbor:"3,keyasint"`
	Lifetime  Lifetime  `cbor:"4,keyasint"`
}

// Store defines the interface for secure key storage.
// Implementations must be safe for concurrent access.
type Store interface {
	// ImportKey stores key under ref, replacing any existing key.
	// Returns ErrInvalidKey if key is empty.
	ImportKey(ref Ref, attrs Attributes, key []byte) error

	// ExportKey copies the key stored under ref into out and returns the
	// number of bytes written.
	// Returns ErrKeyNotFound, ErrNotExportable or ErrBufferTooSmall.
	ExportKey(ref Ref, out []byte) (int, error)

	// DestroyKey removes the key stored under ref.
	// Returns ErrKeyNotFound if no key exists.
	DestroyKey(ref Ref) error
}

// exportTo copies key into out after checking the usage policy.
func exportTo(attrs Attributes, key, out []byte) (int, error) {
	if !attrs.Usage.Has(UsageExport) {
		return 0, ErrNotExportable
	}
	if len(out) < len(key) {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, len(key), len(out))
	}
	return copy(out, key), nil
}
