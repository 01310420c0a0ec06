package persistence

import (
	"fmt"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
	"github.com/mash-protocol/meshcop-go/pkg/keystore"
)

// keyRefBase is the first key store slot reserved for datasets.
const keyRefBase keystore.Ref = 0x20000

// KeyRefs names the key store slots that hold one role's secrets.
type KeyRefs struct {
	NetworkKey keystore.Ref
	Pskc       keystore.Ref
}

// DefaultKeyRefs returns the conventional slots for a role.
func DefaultKeyRefs(role dataset.Role) KeyRefs {
	if role == dataset.RolePending {
		return KeyRefs{NetworkKey: keyRefBase + 4, Pskc: keyRefBase + 5}
	}
	return KeyRefs{NetworkKey: keyRefBase + 2, Pskc: keyRefBase + 3}
}

// KeyPolicy decides where a dataset's secrets live.
type KeyPolicy interface {
	// Destroy removes the role's secrets from secure storage.
	// It never fails; absent keys are ignored.
	Destroy()

	// Store moves the secrets in d into secure storage and zeroes them in d.
	// Panics if secure storage rejects a key.
	Store(d *dataset.Dataset)

	// Emplace puts the secrets from secure storage back into d.
	// Panics if a key that d refers to is missing.
	Emplace(d *dataset.Dataset)

	// Externalizes reports whether secrets are kept out of settings storage.
	Externalizes() bool
}

// NoKeyPolicy keeps secrets inside the dataset. Use when no secure key store
// is available.
type NoKeyPolicy struct{}

func (NoKeyPolicy) Destroy() {}
func (NoKeyPolicy) Store(*dataset.Dataset) {}
func (NoKeyPolicy) Emplace(*dataset.Dataset) {}
func (NoKeyPolicy) Externalizes() bool { return false }

// secretAttrs are the attributes of every externalized dataset secret.
var secretAttrs = keystore.Attributes{
	Type:      keystore.KeyTypeRaw,
	Algorithm: keystore.AlgorithmVendor,
	Usage:     keystore.UsageExport,
	Lifetime:  keystore.LifetimePersistent,
}

// maxSecretSize bounds a secret TLV value (single-byte TLV length).
const maxSecretSize = 255

// SecureKeyPolicy keeps the NetworkKey and Pskc of a dataset in a key store.
type SecureKeyPolicy struct {
	store keystore.Store
	refs  KeyRefs
}

// NewSecureKeyPolicy creates a policy that externalizes secrets into store
// under refs.
func NewSecureKeyPolicy(store keystore.Store, refs KeyRefs) *SecureKeyPolicy {
	return &SecureKeyPolicy{store: store, refs: refs}
}

type secretSlot struct {
	tlv dataset.Type
	ref keystore.Ref
}

func (p *SecureKeyPolicy) slots() [2]secretSlot {
	return [2]secretSlot{
		{tlv: dataset.TypeNetworkKey, ref: p.refs.NetworkKey},
		{tlv: dataset.TypePskc, ref: p.refs.Pskc},
	}
}

// Destroy removes both secrets from the key store.
func (p *SecureKeyPolicy) Destroy() {
	for _, s := range p.slots() {
		_ = p.store.DestroyKey(s.ref)
	}
}

// Store imports each secret TLV present in d and zero-fills its value.
func (p *SecureKeyPolicy) Store(d *dataset.Dataset) {
	for _, s := range p.slots() {
		value, ok := d.Value(s.tlv)
		if !ok {
			continue
		}
		if err := p.store.ImportKey(s.ref, secretAttrs, value); err != nil {
			panic(fmt.Sprintf("persistence: import %s into key %s: %v", s.tlv, s.ref, err))
		}
		// Same length, so the TLV is rewritten in place and cannot fail.
		_ = d.SetValue(s.tlv, make([]byte, len(value)))
	}
}

// Emplace exports each secret whose TLV is present in d into that TLV.
// The placeholder length must match the stored key length.
func (p *SecureKeyPolicy) Emplace(d *dataset.Dataset) {
	var buf [maxSecretSize]byte
	defer clear(buf[:])

	for _, s := range p.slots() {
		placeholder, ok := d.Value(s.tlv)
		if !ok {
			continue
		}
		n, err := p.store.ExportKey(s.ref, buf[:])
		if err != nil {
			panic(fmt.Sprintf("persistence: export %s from key %s: %v", s.tlv, s.ref, err))
		}
		if n != len(placeholder) {
			panic(fmt.Sprintf("persistence: key %s holds %d bytes, %s TLV has %d", s.ref, n, s.tlv, len(placeholder)))
		}
		_ = d.SetValue(s.tlv, buf[:n])
	}
}

// Externalizes returns true.
func (p *SecureKeyPolicy) Externalizes() bool { return true }

// checkSecretSizes rejects a NetworkKey or Pskc TLV that a key store
// cannot hold as a key of the fixed size.
func checkSecretSizes(d *dataset.Dataset) error {
	for _, s := range []struct {
		tlv  dataset.Type
		size int
	}{
		{dataset.TypeNetworkKey, dataset.NetworkKeySize},
		{dataset.TypePskc, dataset.PskcSize},
	} {
		if v, ok := d.Value(s.tlv); ok && len(v) != s.size {
			return fmt.Errorf("%w: %s TLV has %d bytes, want %d", dataset.ErrInvalidDataset, s.tlv, len(v), s.size)
		}
	}
	return nil
}

// Compile-time interface satisfaction checks.
var (
	_ KeyPolicy = NoKeyPolicy{}
	_ KeyPolicy = (*SecureKeyPolicy)(nil)
)
