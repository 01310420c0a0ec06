package log

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

func TestEncodeDecodeOperationEvent(t *testing.T) {
	delay := uint32(29500)
	event := Event{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC),
		StoreID:   "0b7c1d4e-0000-4000-8000-000000000001",
		Role:      dataset.RolePending,
		Category:  CategoryOperation,
		Operation: &OperationEvent{
			Op:                  OpRead,
			Size:                48,
			TLVs:                []dataset.Type{dataset.TypePendingTimestamp, dataset.TypeDelayTimer, dataset.TypeNetworkKey},
			SecretsExternalized: true,
			DelayTimer:          &delay,
			Duration:            150 * time.Microsecond,
		},
	}

	data, err := EncodeEvent(event)
	require.NoError(t, err)

	got, err := DecodeEvent(data)
	require.NoError(t, err)

	assert.True(t, got.Timestamp.Equal(event.Timestamp), "timestamp lost precision: %v", got.Timestamp)
	got.Timestamp = event.Timestamp
	assert.Equal(t, event, got)
}

func TestEncodeDecodeStateChangeEvent(t *testing.T) {
	ts := dataset.Timestamp{Seconds: 1700000000, Ticks: 5, Authoritative: true}
	event := Event{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		StoreID:   "s",
		Role:      dataset.RoleActive,
		Category:  CategoryState,
		StateChange: &StateChangeEvent{
			Saved:            true,
			TimestampPresent: true,
			Timestamp:        &ts,
			Reason:           OpRestore.String(),
		},
	}

	data, err := EncodeEvent(event)
	require.NoError(t, err)

	got, err := DecodeEvent(data)
	require.NoError(t, err)
	require.NotNil(t, got.StateChange)
	assert.Equal(t, *event.StateChange, *got.StateChange)
	assert.Nil(t, got.Operation)
	assert.Nil(t, got.Error)
}

func TestEncodingIsDeterministic(t *testing.T) {
	event := Event{
		StoreID:  "s",
		Category: CategoryError,
		Error:    &ErrorEventData{Op: OpSave, Message: "disk full", Context: "persist"},
	}

	a, err := EncodeEvent(event)
	require.NoError(t, err)
	b, err := EncodeEvent(event)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	_, err := DecodeEvent([]byte{0xff, 0x00})
	assert.Error(t, err)
}

func TestEncoderDecoderStream(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := 0; i < 3; i++ {
		require.NoError(t, enc.Encode(Event{StoreID: "s", Operation: &OperationEvent{Op: OpSave, Size: i}}))
	}

	dec := NewDecoder(&buf)
	for i := 0; i < 3; i++ {
		e, err := dec.Decode()
		require.NoError(t, err)
		require.NotNil(t, e.Operation)
		assert.Equal(t, i, e.Operation.Size)
	}
	_, err := dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}

func TestInvalidEventsRejected(t *testing.T) {
	tests := []struct {
		name  string
		event Event
	}{
		{"unknown role", Event{Role: dataset.Role(7), Category: CategoryState}},
		{"unknown category", Event{Role: dataset.RoleActive, Category: Category(9)}},
		{"too many tlvs", Event{Category: CategoryOperation,
			Operation: &OperationEvent{Op: OpRead, TLVs: make([]dataset.Type, dataset.MaxSize)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeEvent(tt.event)
			assert.ErrorIs(t, err, ErrInvalidEvent)

			var buf bytes.Buffer
			assert.ErrorIs(t, NewEncoder(&buf).Encode(tt.event), ErrInvalidEvent)
			assert.Zero(t, buf.Len(), "invalid event was written")

			// Written by a foreign encoder, the event is still refused on read.
			data, err := cbor.Marshal(tt.event)
			require.NoError(t, err)
			_, err = DecodeEvent(data)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestDecodeEventRejectsDeepNesting(t *testing.T) {
	// Five nested single-element arrays exceed the event nesting bound.
	_, err := DecodeEvent([]byte{0x81, 0x81, 0x81, 0x81, 0x81, 0x00})
	assert.Error(t, err)
}

func TestDecodeEventRejectsDuplicateKeys(t *testing.T) {
	// {2: "a", 2: "b"}
	_, err := DecodeEvent([]byte{0xa2, 0x02, 0x61, 'a', 0x02, 0x61, 'b'})
	assert.Error(t, err)
}
