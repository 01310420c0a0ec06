package dataset

import (
	"errors"
	"testing"
)

func TestTimestampEncodeDecode(t *testing.T) {
	tests := []Timestamp{
		{},
		{Seconds: 1},
		{Seconds: 1700000000, Ticks: 12345, Authoritative: true},
		{Seconds: MaxTimestampSeconds, Ticks: MaxTimestampTicks},
	}

	for _, ts := range tests {
		t.Run(ts.String(), func(t *testing.T) {
			b := ts.Encode()
			got, err := DecodeTimestamp(b[:])
			if err != nil {
				t.Fatalf("DecodeTimestamp() error = %v", err)
			}
			if got != ts {
				t.Errorf("DecodeTimestamp() = %+v, want %+v", got, ts)
			}
		})
	}
}

func TestTimestampEncodingLayout(t *testing.T) {
	b := Timestamp{Seconds: 1, Ticks: 1, Authoritative: true}.Encode()
	want := [TimestampSize]byte{0, 0, 0, 0, 0, 1, 0, 3}
	if b != want {
		t.Errorf("Encode() = %x, want %x", b, want)
	}
}

func TestDecodeTimestampBadLength(t *testing.T) {
	if _, err := DecodeTimestamp([]byte{1, 2, 3}); !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("DecodeTimestamp() error = %v, want ErrInvalidDataset", err)
	}
}

func TestTimestampCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Timestamp
		want int
	}{
		{"equal", Timestamp{Seconds: 5}, Timestamp{Seconds: 5}, 0},
		{"older seconds", Timestamp{Seconds: 4, Ticks: 100}, Timestamp{Seconds: 5}, -1},
		{"newer seconds", Timestamp{Seconds: 6}, Timestamp{Seconds: 5, Ticks: 100}, 1},
		{"older ticks", Timestamp{Seconds: 5, Ticks: 1}, Timestamp{Seconds: 5, Ticks: 2}, -1},
		{"authoritative wins tie", Timestamp{Seconds: 5, Authoritative: true}, Timestamp{Seconds: 5}, 1},
		{"non-authoritative loses tie", Timestamp{Seconds: 5}, Timestamp{Seconds: 5, Authoritative: true}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want Timestamp
	}{
		{"0", Timestamp{}},
		{"12", Timestamp{Seconds: 12}},
		{"12.5", Timestamp{Seconds: 12, Ticks: 5}},
		{"12A", Timestamp{Seconds: 12, Authoritative: true}},
		{"1700000000.32767A", Timestamp{Seconds: 1700000000, Ticks: MaxTimestampTicks, Authoritative: true}},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimestamp(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if back, err := ParseTimestamp(got.String()); err != nil || back != got {
			t.Errorf("ParseTimestamp(String()) = %+v, %v, want %+v", back, err, got)
		}
	}

	for _, bad := range []string{"", "A", "x.1", "1.x", "1.32768", "281474976710656"} {
		if _, err := ParseTimestamp(bad); err == nil {
			t.Errorf("ParseTimestamp(%q) expected error", bad)
		}
	}
}
