package settings

import (
	"errors"
	"fmt"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

// Store errors.
var (
	ErrNotFound    = errors.New("setting not found")
	ErrInvalidArgs = errors.New("invalid setting")
)

// Key identifies a setting.
type Key uint16

const (
	// KeyActiveDataset holds the Active operational dataset.
	KeyActiveDataset Key = 0x0001

	// KeyPendingDataset holds the Pending operational dataset.
	KeyPendingDataset Key = 0x0002
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyActiveDataset:
		return "ActiveDataset"
	case KeyPendingDataset:
		return "PendingDataset"
	default:
		return fmt.Sprintf("Key(0x%04x)", uint16(k))
	}
}

// DatasetKey returns the setting key that holds the dataset of a role.
func DatasetKey(role dataset.Role) Key {
	if role == dataset.RolePending {
		return KeyPendingDataset
	}
	return KeyActiveDataset
}

// Store defines the interface for dataset settings storage.
// Implementations must be safe for concurrent access.
type Store interface {
	// ReadDataset returns the persisted dataset blob for a role.
	// Returns ErrNotFound if nothing is stored for the role.
	ReadDataset(role dataset.Role) ([]byte, error)

	// SaveDataset persists the dataset blob for a role, replacing any
	// previous value. Returns ErrInvalidArgs if data exceeds dataset.MaxSize.
	SaveDataset(role dataset.Role, data []byte) error

	// DeleteDataset removes the dataset blob for a role.
	// Returns ErrNotFound if nothing is stored for the role.
	DeleteDataset(role dataset.Role) error
}

func checkSize(data []byte) error {
	if len(data) > dataset.MaxSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidArgs, len(data), dataset.MaxSize)
	}
	return nil
}
