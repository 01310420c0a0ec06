package dataset

// Type identifies a TLV record in an operational dataset.
type Type uint8

const (
	// TypeChannel carries the channel page and channel number.
	TypeChannel Type = 0

	// TypePanID carries the IEEE 802.15.4 PAN identifier.
	TypePanID Type = 1

	// TypeExtendedPanID carries the 8-byte extended PAN identifier.
	TypeExtendedPanID Type = 2

	// TypeNetworkName carries the human-readable network name.
	TypeNetworkName Type = 3

	// TypePskc carries the commissioning credential.
	TypePskc Type = 4

	// TypeNetworkKey carries the network master key.
	TypeNetworkKey Type = 5

	// TypeNetworkKeySequence carries the key sequence counter.
	TypeNetworkKeySequence Type = 6

	// TypeMeshLocalPrefix carries the 64-bit mesh-local prefix.
	TypeMeshLocalPrefix Type = 7

	// TypeSecurityPolicy carries the key rotation time and policy flags.
	TypeSecurityPolicy Type = 12

	// TypeActiveTimestamp carries the Active dataset timestamp.
	TypeActiveTimestamp Type = 14

	// TypePendingTimestamp carries the Pending dataset timestamp.
	TypePendingTimestamp Type = 51

	// TypeDelayTimer carries the remaining delay before a Pending dataset
	// becomes Active, in milliseconds.
	TypeDelayTimer Type = 52

	// TypeChannelMask carries the supported channel masks.
	TypeChannelMask Type = 53
)

// String returns the TLV type name.
func (t Type) String() string {
	switch t {
	case TypeChannel:
		return "Channel"
	case TypePanID:
		return "PanId"
	case TypeExtendedPanID:
		return "ExtendedPanId"
	case TypeNetworkName:
		return "NetworkName"
	case TypePskc:
		return "Pskc"
	case TypeNetworkKey:
		return "NetworkKey"
	case TypeNetworkKeySequence:
		return "NetworkKeySequence"
	case TypeMeshLocalPrefix:
		return "MeshLocalPrefix"
	case TypeSecurityPolicy:
		return "SecurityPolicy"
	case TypeActiveTimestamp:
		return "ActiveTimestamp"
	case TypePendingTimestamp:
		return "PendingTimestamp"
	case TypeDelayTimer:
		return "DelayTimer"
	case TypeChannelMask:
		return "ChannelMask"
	default:
		return "Unknown"
	}
}

// Role identifies which of the two local datasets is meant.
type Role uint8

const (
	// RoleActive is the dataset currently in use.
	RoleActive Role = 0

	// RolePending is the dataset waiting for its delay timer to expire.
	RolePending Role = 1
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleActive:
		return "Active"
	case RolePending:
		return "Pending"
	default:
		return "Unknown"
	}
}

// TimestampType returns the TLV type that carries this role's timestamp.
func (r Role) TimestampType() Type {
	if r == RolePending {
		return TypePendingTimestamp
	}
	return TypeActiveTimestamp
}

// ParseRole parses a role name as accepted on command lines and in config
// files ("active" or "pending", case-sensitive lower case).
func ParseRole(s string) (Role, error) {
	switch s {
	case "active":
		return RoleActive, nil
	case "pending":
		return RolePending, nil
	default:
		return 0, ErrInvalidRole
	}
}
