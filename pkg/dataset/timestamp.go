package dataset

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// TimestampSize is the encoded size of a Timestamp TLV value.
const TimestampSize = 8

// Timestamp limits.
const (
	// MaxTimestampSeconds is the largest value of the 48-bit seconds field.
	MaxTimestampSeconds = 1<<48 - 1

	// MaxTimestampTicks is the largest value of the 15-bit ticks field.
	MaxTimestampTicks = 1<<15 - 1
)

// Timestamp orders datasets. Newer datasets carry larger timestamps.
type Timestamp struct {
	// Seconds is a 48-bit seconds counter.
	Seconds uint64 `yaml:"seconds" json:"seconds"`

	// Ticks is a 15-bit fraction of a second (1/32768 s).
	Ticks uint16 `yaml:"ticks,omitempty" json:"ticks,omitempty"`

	// Authoritative is set when the timestamp derives from a trusted time source.
	Authoritative bool `yaml:"authoritative,omitempty" json:"authoritative,omitempty"`
}

// Encode returns the 8-byte TLV value of the timestamp.
func (t Timestamp) Encode() [TimestampSize]byte {
	var b [TimestampSize]byte
	v := (t.Seconds&MaxTimestampSeconds)<<16 | uint64(t.Ticks&MaxTimestampTicks)<<1
	if t.Authoritative {
		v |= 1
	}
	binary.BigEndian.PutUint64(b[:], v)
	return b
}

// DecodeTimestamp decodes an 8-byte TLV value.
func DecodeTimestamp(b []byte) (Timestamp, error) {
	if len(b) != TimestampSize {
		return Timestamp{}, fmt.Errorf("%w: timestamp length %d", ErrInvalidDataset, len(b))
	}
	v := binary.BigEndian.Uint64(b)
	return Timestamp{
		Seconds:       v >> 16,
		Ticks:         uint16(v>>1) & MaxTimestampTicks,
		Authoritative: v&1 == 1,
	}, nil
}

// Compare returns -1, 0 or +1 when t is older than, equal to or newer than o.
// Seconds are compared first, then ticks, then the authoritative flag.
func (t Timestamp) Compare(o Timestamp) int {
	switch {
	case t.Seconds < o.Seconds:
		return -1
	case t.Seconds > o.Seconds:
		return 1
	case t.Ticks < o.Ticks:
		return -1
	case t.Ticks > o.Ticks:
		return 1
	case !t.Authoritative && o.Authoritative:
		return -1
	case t.Authoritative && !o.Authoritative:
		return 1
	default:
		return 0
	}
}

// String returns a compact representation such as "1700000000.123A".
func (t Timestamp) String() string {
	s := fmt.Sprintf("%d.%d", t.Seconds, t.Ticks)
	if t.Authoritative {
		s += "A"
	}
	return s
}

// ParseTimestamp parses the form printed by String: seconds, an optional
// ".ticks" part and an optional "A" suffix for authoritative.
func ParseTimestamp(s string) (Timestamp, error) {
	var ts Timestamp

	rest, auth := strings.CutSuffix(s, "A")
	ts.Authoritative = auth

	secStr, tickStr, hasTicks := strings.Cut(rest, ".")
	sec, err := strconv.ParseUint(secStr, 10, 48)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: seconds: %w", s, err)
	}
	ts.Seconds = sec

	if hasTicks {
		ticks, err := strconv.ParseUint(tickStr, 10, 15)
		if err != nil {
			return Timestamp{}, fmt.Errorf("invalid timestamp %q: ticks: %w", s, err)
		}
		ts.Ticks = uint16(ticks)
	}
	return ts, nil
}
