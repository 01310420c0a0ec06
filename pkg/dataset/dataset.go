package dataset

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

// Dataset errors.
var (
	ErrInvalidDataset = errors.New("invalid dataset")
	ErrNoBufs         = errors.New("dataset size limit exceeded")
	ErrInvalidRole    = errors.New("invalid dataset role")
)

const (
	// MaxSize is the maximum encoded size of a dataset in bytes.
	MaxSize = 254

	// tlvHeaderSize is the size of the type and length fields.
	tlvHeaderSize = 2

	// maxValueSize is the largest value a single-byte length can describe.
	maxValueSize = 255
)

// Fixed TLV value sizes.
const (
	DelayTimerSize = 4

	// MaxDelayTimer is the longest delay a Pending dataset may request (72h).
	MaxDelayTimer uint32 = 72 * 60 * 60 * 1000
)

// Dataset is an operational dataset in TLV form.
// The zero value is an empty dataset ready to use.
//
// Copying a Dataset by value yields an independent copy.
type Dataset struct {
	tlvs   [MaxSize]byte
	length int

	// UpdateTime is the monotonic time in milliseconds at which the dataset
	// was last read from or written to local storage.
	UpdateTime uint32
}

// New returns a dataset parsed from TLV bytes.
func New(data []byte) (*Dataset, error) {
	d := &Dataset{}
	if err := d.SetFrom(data); err != nil {
		return nil, err
	}
	return d, nil
}

// SetFrom replaces the dataset contents with data after validating its
// structure. On error the dataset is left empty.
func (d *Dataset) SetFrom(data []byte) error {
	d.Clear()

	if err := validate(data); err != nil {
		return err
	}

	d.length = copy(d.tlvs[:], data)
	return nil
}

// validate checks that data is a sequence of complete TLVs with unique tags.
func validate(data []byte) error {
	if len(data) > MaxSize {
		return fmt.Errorf("%w: size %d exceeds %d", ErrInvalidDataset, len(data), MaxSize)
	}

	var seen [256]bool
	for off := 0; off < len(data); {
		if len(data)-off < tlvHeaderSize {
			return fmt.Errorf("%w: truncated TLV header at offset %d", ErrInvalidDataset, off)
		}
		t := data[off]
		end := off + tlvHeaderSize + int(data[off+1])
		if end > len(data) {
			return fmt.Errorf("%w: truncated %s TLV at offset %d", ErrInvalidDataset, Type(t), off)
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate %s TLV", ErrInvalidDataset, Type(t))
		}
		seen[t] = true
		off = end
	}
	return nil
}

// Clear removes all TLVs.
func (d *Dataset) Clear() {
	d.tlvs = [MaxSize]byte{}
	d.length = 0
}

// Size returns the encoded size in bytes.
func (d *Dataset) Size() int {
	return d.length
}

// IsEmpty returns true if the dataset holds no TLVs.
func (d *Dataset) IsEmpty() bool {
	return d.length == 0
}

// Bytes returns a copy of the TLV encoding.
func (d *Dataset) Bytes() []byte {
	return bytes.Clone(d.tlvs[:d.length])
}

// Clone returns an independent copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	c := *d
	return &c
}

// Equal reports whether both datasets carry the same TLV bytes.
// UpdateTime is not compared.
func (d *Dataset) Equal(o *Dataset) bool {
	return bytes.Equal(d.tlvs[:d.length], o.tlvs[:o.length])
}

// Types returns the TLV types in encoding order.
func (d *Dataset) Types() []Type {
	var types []Type
	for off := 0; off < d.length; off += d.tlvSize(off) {
		types = append(types, Type(d.tlvs[off]))
	}
	return types
}

// find returns the offset of the TLV with type t, or -1.
func (d *Dataset) find(t Type) int {
	for off := 0; off < d.length; off += d.tlvSize(off) {
		if Type(d.tlvs[off]) == t {
			return off
		}
	}
	return -1
}

func (d *Dataset) tlvSize(off int) int {
	return tlvHeaderSize + int(d.tlvs[off+1])
}

// Contains reports whether a TLV of type t is present.
func (d *Dataset) Contains(t Type) bool {
	return d.find(t) >= 0
}

// Value returns a copy of the value of the TLV with type t.
func (d *Dataset) Value(t Type) ([]byte, bool) {
	off := d.find(t)
	if off < 0 {
		return nil, false
	}
	start := off + tlvHeaderSize
	return bytes.Clone(d.tlvs[start : off+d.tlvSize(off)]), true
}

// SetValue adds or replaces the TLV with type t.
// Returns ErrNoBufs if the result would exceed MaxSize; the dataset is
// unchanged in that case.
func (d *Dataset) SetValue(t Type, value []byte) error {
	if len(value) > maxValueSize {
		return fmt.Errorf("%w: %s value of %d bytes", ErrNoBufs, t, len(value))
	}

	off := d.find(t)
	if off >= 0 && int(d.tlvs[off+1]) == len(value) {
		copy(d.tlvs[off+tlvHeaderSize:], value)
		return nil
	}

	newLength := d.length + tlvHeaderSize + len(value)
	if off >= 0 {
		newLength -= d.tlvSize(off)
	}
	if newLength > MaxSize {
		return fmt.Errorf("%w: setting %s needs %d bytes", ErrNoBufs, t, newLength)
	}

	d.Remove(t)
	d.tlvs[d.length] = byte(t)
	d.tlvs[d.length+1] = byte(len(value))
	copy(d.tlvs[d.length+tlvHeaderSize:], value)
	d.length = newLength
	return nil
}

// Remove deletes the TLV with type t if present.
func (d *Dataset) Remove(t Type) {
	off := d.find(t)
	if off < 0 {
		return
	}
	size := d.tlvSize(off)
	copy(d.tlvs[off:], d.tlvs[off+size:d.length])
	d.length -= size
	clear(d.tlvs[d.length:])
}

// Timestamp returns the timestamp that orders datasets of the given role.
func (d *Dataset) Timestamp(role Role) (Timestamp, bool) {
	v, ok := d.Value(role.TimestampType())
	if !ok {
		return Timestamp{}, false
	}
	ts, err := DecodeTimestamp(v)
	if err != nil {
		return Timestamp{}, false
	}
	return ts, true
}

// SetTimestamp sets the timestamp TLV for the given role.
func (d *Dataset) SetTimestamp(role Role, ts Timestamp) error {
	b := ts.Encode()
	return d.SetValue(role.TimestampType(), b[:])
}

// DelayTimer returns the delay timer in milliseconds.
func (d *Dataset) DelayTimer() (uint32, bool) {
	v, ok := d.Value(TypeDelayTimer)
	if !ok || len(v) != DelayTimerSize {
		return 0, false
	}
	return binary.BigEndian.Uint32(v), true
}

// SetDelayTimer sets the delay timer in milliseconds.
func (d *Dataset) SetDelayTimer(ms uint32) error {
	var b [DelayTimerSize]byte
	binary.BigEndian.PutUint32(b[:], ms)
	return d.SetValue(TypeDelayTimer, b[:])
}

// CopyFor replaces d with a copy of src suitable for storing in the given
// role. Active datasets never carry a PendingTimestamp or DelayTimer.
func (d *Dataset) CopyFor(role Role, src *Dataset) {
	*d = *src
	if role == RoleActive {
		d.Remove(TypePendingTimestamp)
		d.Remove(TypeDelayTimer)
	}
}

// SetFromTLVs replaces the dataset contents with a flat TLV buffer.
func (d *Dataset) SetFromTLVs(t *TLVs) error {
	if int(t.Length) > MaxSize {
		d.Clear()
		return fmt.Errorf("%w: size %d exceeds %d", ErrInvalidDataset, t.Length, MaxSize)
	}
	return d.SetFrom(t.Data[:t.Length])
}

// ConvertToTLVs copies the dataset into a flat TLV buffer.
func (d *Dataset) ConvertToTLVs(t *TLVs) {
	*t = TLVs{}
	t.Length = uint8(copy(t.Data[:], d.tlvs[:d.length]))
}

// String returns the hex encoding of the TLVs.
func (d *Dataset) String() string {
	return hex.EncodeToString(d.tlvs[:d.length])
}

// TLVs is an operational dataset as a flat, fixed-size buffer.
type TLVs struct {
	Data   [MaxSize]byte
	Length uint8
}

// Bytes returns the valid portion of the buffer.
func (t *TLVs) Bytes() []byte {
	return t.Data[:t.Length]
}
