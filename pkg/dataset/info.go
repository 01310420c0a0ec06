package dataset

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"net/netip"
)

// Fixed-size field lengths.
const (
	NetworkKeySize      = 16
	PskcSize            = 16
	ExtendedPanIDSize   = 8
	MeshLocalPrefixSize = 8
	MaxNetworkNameSize  = 16

	channelSize        = 3
	panIDSize          = 2
	securityPolicySize = 4
	channelMaskSize    = 6
)

// NetworkKey is the network master key.
type NetworkKey [NetworkKeySize]byte

// Pskc is the pre-shared key for the commissioner.
type Pskc [PskcSize]byte

// ExtendedPanID is the extended PAN identifier.
type ExtendedPanID [ExtendedPanIDSize]byte

// MeshLocalPrefix is the upper 64 bits of the mesh-local IPv6 prefix.
type MeshLocalPrefix [MeshLocalPrefixSize]byte

// String returns the key as hex.
func (k NetworkKey) String() string { return hex.EncodeToString(k[:]) }

// MarshalText encodes the key as hex.
func (k NetworkKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a hex key.
func (k *NetworkKey) UnmarshalText(b []byte) error { return decodeHex(k[:], b, "network key") }

// String returns the PSKc as hex.
func (p Pskc) String() string { return hex.EncodeToString(p[:]) }

// MarshalText encodes the PSKc as hex.
func (p Pskc) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes a hex PSKc.
func (p *Pskc) UnmarshalText(b []byte) error { return decodeHex(p[:], b, "pskc") }

// String returns the extended PAN ID as hex.
func (e ExtendedPanID) String() string { return hex.EncodeToString(e[:]) }

// MarshalText encodes the extended PAN ID as hex.
func (e ExtendedPanID) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText decodes a hex extended PAN ID.
func (e *ExtendedPanID) UnmarshalText(b []byte) error {
	return decodeHex(e[:], b, "extended pan id")
}

// String returns the prefix in CIDR notation, e.g. "fdde:ad00:beef:0::/64".
func (m MeshLocalPrefix) String() string {
	var a [16]byte
	copy(a[:], m[:])
	return netip.PrefixFrom(netip.AddrFrom16(a), 64).String()
}

// MarshalText encodes the prefix in CIDR notation.
func (m MeshLocalPrefix) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes a /64 IPv6 prefix in CIDR notation.
func (m *MeshLocalPrefix) UnmarshalText(b []byte) error {
	p, err := netip.ParsePrefix(string(b))
	if err != nil {
		return fmt.Errorf("mesh local prefix: %w", err)
	}
	if !p.Addr().Is6() || p.Bits() != 64 {
		return fmt.Errorf("mesh local prefix: %q is not an IPv6 /64", b)
	}
	a := p.Masked().Addr().As16()
	copy(m[:], a[:MeshLocalPrefixSize])
	return nil
}

func decodeHex(dst []byte, src []byte, what string) error {
	if hex.DecodedLen(len(src)) != len(dst) {
		return fmt.Errorf("%s: want %d hex bytes, got %d characters", what, len(dst), len(src))
	}
	if _, err := hex.Decode(dst, src); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// SecurityPolicy carries the key rotation time and policy flags.
type SecurityPolicy struct {
	// RotationTime is the key rotation period in hours.
	RotationTime uint16 `yaml:"rotation_time" json:"rotation_time"`

	// Flags holds the raw policy flag bytes.
	Flags uint16 `yaml:"flags" json:"flags"`
}

// Info is the structured form of an operational dataset.
// Nil fields are absent from the dataset.
type Info struct {
	ActiveTimestamp  *Timestamp       `yaml:"active_timestamp,omitempty" json:"active_timestamp,omitempty"`
	PendingTimestamp *Timestamp       `yaml:"pending_timestamp,omitempty" json:"pending_timestamp,omitempty"`
	NetworkKey       *NetworkKey      `yaml:"network_key,omitempty" json:"network_key,omitempty"`
	NetworkName      *string          `yaml:"network_name,omitempty" json:"network_name,omitempty"`
	ExtendedPanID    *ExtendedPanID   `yaml:"extended_pan_id,omitempty" json:"extended_pan_id,omitempty"`
	MeshLocalPrefix  *MeshLocalPrefix `yaml:"mesh_local_prefix,omitempty" json:"mesh_local_prefix,omitempty"`
	DelayTimer       *uint32          `yaml:"delay_timer,omitempty" json:"delay_timer,omitempty"`
	PanID            *uint16          `yaml:"pan_id,omitempty" json:"pan_id,omitempty"`
	Channel          *uint16          `yaml:"channel,omitempty" json:"channel,omitempty"`
	Pskc             *Pskc            `yaml:"pskc,omitempty" json:"pskc,omitempty"`
	SecurityPolicy   *SecurityPolicy  `yaml:"security_policy,omitempty" json:"security_policy,omitempty"`
	ChannelMask      *uint32          `yaml:"channel_mask,omitempty" json:"channel_mask,omitempty"`
}

// Clear resets all fields to absent.
func (i *Info) Clear() {
	*i = Info{}
}

// IsEmpty returns true if no field is present.
func (i *Info) IsEmpty() bool {
	return *i == (Info{})
}

// SetFromInfo replaces the dataset contents with the fields present in info.
func (d *Dataset) SetFromInfo(info *Info) error {
	d.Clear()

	if info.NetworkName != nil {
		if n := len(*info.NetworkName); n == 0 || n > MaxNetworkNameSize {
			return fmt.Errorf("%w: network name length %d", ErrInvalidDataset, n)
		}
	}

	var err error
	set := func(t Type, v []byte) {
		if err == nil {
			err = d.SetValue(t, v)
		}
	}

	if info.ActiveTimestamp != nil {
		b := info.ActiveTimestamp.Encode()
		set(TypeActiveTimestamp, b[:])
	}
	if info.PendingTimestamp != nil {
		b := info.PendingTimestamp.Encode()
		set(TypePendingTimestamp, b[:])
	}
	if info.NetworkKey != nil {
		set(TypeNetworkKey, info.NetworkKey[:])
	}
	if info.NetworkName != nil {
		set(TypeNetworkName, []byte(*info.NetworkName))
	}
	if info.ExtendedPanID != nil {
		set(TypeExtendedPanID, info.ExtendedPanID[:])
	}
	if info.MeshLocalPrefix != nil {
		set(TypeMeshLocalPrefix, info.MeshLocalPrefix[:])
	}
	if info.DelayTimer != nil {
		set(TypeDelayTimer, binary.BigEndian.AppendUint32(nil, *info.DelayTimer))
	}
	if info.PanID != nil {
		set(TypePanID, binary.BigEndian.AppendUint16(nil, *info.PanID))
	}
	if info.Channel != nil {
		// Channel page 0 (2.4 GHz O-QPSK).
		set(TypeChannel, binary.BigEndian.AppendUint16([]byte{0}, *info.Channel))
	}
	if info.Pskc != nil {
		set(TypePskc, info.Pskc[:])
	}
	if info.SecurityPolicy != nil {
		b := binary.BigEndian.AppendUint16(nil, info.SecurityPolicy.RotationTime)
		set(TypeSecurityPolicy, binary.BigEndian.AppendUint16(b, info.SecurityPolicy.Flags))
	}
	if info.ChannelMask != nil {
		// One page-0 mask entry: page, mask length, mask.
		set(TypeChannelMask, binary.BigEndian.AppendUint32([]byte{0, 4}, *info.ChannelMask))
	}

	if err != nil {
		d.Clear()
	}
	return err
}

// ConvertToInfo fills info with the known TLVs of the dataset.
// TLVs with an unexpected length are skipped.
func (d *Dataset) ConvertToInfo(info *Info) {
	info.Clear()

	for _, t := range d.Types() {
		v, _ := d.Value(t)

		switch t {
		case TypeActiveTimestamp, TypePendingTimestamp:
			ts, err := DecodeTimestamp(v)
			if err != nil {
				continue
			}
			if t == TypeActiveTimestamp {
				info.ActiveTimestamp = &ts
			} else {
				info.PendingTimestamp = &ts
			}
		case TypeNetworkKey:
			if len(v) == NetworkKeySize {
				k := NetworkKey(v)
				info.NetworkKey = &k
			}
		case TypeNetworkName:
			if len(v) > 0 && len(v) <= MaxNetworkNameSize {
				name := string(v)
				info.NetworkName = &name
			}
		case TypeExtendedPanID:
			if len(v) == ExtendedPanIDSize {
				e := ExtendedPanID(v)
				info.ExtendedPanID = &e
			}
		case TypeMeshLocalPrefix:
			if len(v) == MeshLocalPrefixSize {
				m := MeshLocalPrefix(v)
				info.MeshLocalPrefix = &m
			}
		case TypeDelayTimer:
			if len(v) == DelayTimerSize {
				ms := binary.BigEndian.Uint32(v)
				info.DelayTimer = &ms
			}
		case TypePanID:
			if len(v) == panIDSize {
				id := binary.BigEndian.Uint16(v)
				info.PanID = &id
			}
		case TypeChannel:
			if len(v) == channelSize {
				ch := binary.BigEndian.Uint16(v[1:])
				info.Channel = &ch
			}
		case TypePskc:
			if len(v) == PskcSize {
				p := Pskc(v)
				info.Pskc = &p
			}
		case TypeSecurityPolicy:
			if len(v) == securityPolicySize {
				info.SecurityPolicy = &SecurityPolicy{
					RotationTime: binary.BigEndian.Uint16(v),
					Flags:        binary.BigEndian.Uint16(v[2:]),
				}
			}
		case TypeChannelMask:
			if len(v) == channelMaskSize && v[0] == 0 && v[1] == 4 {
				mask := binary.BigEndian.Uint32(v[2:])
				info.ChannelMask = &mask
			}
		}
	}
}
