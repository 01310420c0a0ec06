package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
	"github.com/mash-protocol/meshcop-go/pkg/keystore"
)

func TestDefaultKeyRefs(t *testing.T) {
	active := DefaultKeyRefs(dataset.RoleActive)
	pending := DefaultKeyRefs(dataset.RolePending)

	assert.Equal(t, KeyRefs{NetworkKey: 0x20002, Pskc: 0x20003}, active)
	assert.Equal(t, KeyRefs{NetworkKey: 0x20004, Pskc: 0x20005}, pending)
}

func TestNoKeyPolicyLeavesDataset(t *testing.T) {
	d, err := dataset.New([]byte{byte(dataset.TypeNetworkKey), 2, 0xab, 0xcd})
	require.NoError(t, err)
	before := d.Bytes()

	var p NoKeyPolicy
	p.Destroy()
	p.Store(d)
	p.Emplace(d)

	assert.Equal(t, before, d.Bytes())
	assert.False(t, p.Externalizes())
}

func TestSecureKeyPolicyRoundTrip(t *testing.T) {
	keys := keystore.NewMemoryStore()
	refs := DefaultKeyRefs(dataset.RoleActive)
	p := NewSecureKeyPolicy(keys, refs)

	d, err := dataset.New([]byte{
		byte(dataset.TypePanID), 2, 0xfa, 0xce,
		byte(dataset.TypeNetworkKey), 4, 1, 2, 3, 4,
		byte(dataset.TypePskc), 3, 5, 6, 7,
	})
	require.NoError(t, err)
	original := d.Bytes()

	p.Store(d)
	key, _ := d.Value(dataset.TypeNetworkKey)
	assert.Equal(t, []byte{0, 0, 0, 0}, key)
	pskc, _ := d.Value(dataset.TypePskc)
	assert.Equal(t, []byte{0, 0, 0}, pskc)
	assert.Equal(t, len(original), d.Size(), "TLVs rewritten in place")
	assert.True(t, p.Externalizes())

	p.Emplace(d)
	assert.Equal(t, original, d.Bytes())

	p.Destroy()
	assert.False(t, keys.HasKey(refs.NetworkKey))
	assert.False(t, keys.HasKey(refs.Pskc))
	p.Destroy()
}

func TestSecureKeyPolicyEmplaceLengthMismatch(t *testing.T) {
	keys := keystore.NewMemoryStore()
	refs := DefaultKeyRefs(dataset.RolePending)
	require.NoError(t, keys.ImportKey(refs.NetworkKey, secretAttrs, []byte{1, 2, 3, 4}))

	d, err := dataset.New([]byte{byte(dataset.TypeNetworkKey), 2, 0, 0})
	require.NoError(t, err)

	p := NewSecureKeyPolicy(keys, refs)
	assert.Panics(t, func() { p.Emplace(d) })
}

func TestSecureKeyPolicyEmplaceSkipsAbsentTLVs(t *testing.T) {
	p := NewSecureKeyPolicy(keystore.NewMemoryStore(), DefaultKeyRefs(dataset.RoleActive))

	d, err := dataset.New([]byte{byte(dataset.TypeChannel), 3, 0, 0, 11})
	require.NoError(t, err)
	assert.NotPanics(t, func() { p.Emplace(d) })
}
