package log

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

// Event represents a dataset storage event.
// CBOR encoding uses integer keys for compactness.
//
// Events never carry key material: operations record the TLV types
// involved, not their values.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// StoreID identifies the local dataset store instance (UUID).
	// A new ID is assigned on every start, so restarts are visible.
	StoreID string `cbor:"2,keyasint"`

	// Role of the dataset the event belongs to.
	Role dataset.Role `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	Operation   *OperationEvent   `cbor:"10,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"12,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryOperation indicates a store operation (save/read/clear/restore).
	CategoryOperation Category = 0
	// CategoryState indicates a change of the cached store state.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryOperation:
		return "OPERATION"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Operation identifies a local dataset store operation.
type Operation uint8

const (
	// OpSave is a save of a dataset (including an empty save that deletes).
	OpSave Operation = 0
	// OpRead is a read of the persisted dataset.
	OpRead Operation = 1
	// OpClear is an explicit clear.
	OpClear Operation = 2
	// OpRestore is the startup restore of cached state.
	OpRestore Operation = 3
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpSave:
		return "SAVE"
	case OpRead:
		return "READ"
	case OpClear:
		return "CLEAR"
	case OpRestore:
		return "RESTORE"
	default:
		return "UNKNOWN"
	}
}

// ParseOperation parses an operation name as printed by String
// (case-insensitive is left to the caller).
func ParseOperation(s string) (Operation, bool) {
	for _, op := range []Operation{OpSave, OpRead, OpClear, OpRestore} {
		if op.String() == s {
			return op, true
		}
	}
	return 0, false
}

// OperationEvent captures a completed store operation.
type OperationEvent struct {
	// Op is the operation performed.
	Op Operation `cbor:"1,keyasint"`

	// Size is the dataset size in bytes (0 for clear or an empty save).
	Size int `cbor:"2,keyasint"`

	// TLVs lists the TLV types present in the dataset.
	TLVs []dataset.Type `cbor:"3,keyasint,omitempty"`

	// SecretsExternalized is set when secrets were moved to or restored
	// from the secure key store.
	SecretsExternalized bool `cbor:"4,keyasint,omitempty"`

	// DelayTimer is the aged delay timer returned by a Pending read (ms).
	DelayTimer *uint32 `cbor:"5,keyasint,omitempty"`

	// Duration is how long the operation took.
	Duration time.Duration `cbor:"6,keyasint,omitempty"`
}

// StateChangeEvent captures a change of the cached store state.
type StateChangeEvent struct {
	// Saved reports whether a dataset is persisted for the role.
	Saved bool `cbor:"1,keyasint"`

	// TimestampPresent reports whether the dataset carries its role timestamp.
	TimestampPresent bool `cbor:"2,keyasint"`

	// Timestamp is the cached timestamp, when present.
	Timestamp *dataset.Timestamp `cbor:"3,keyasint,omitempty"`

	// Reason for the change (operation name).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures a failed operation.
type ErrorEventData struct {
	// Op is the operation that failed.
	Op Operation `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes which step failed.
	Context string `cbor:"3,keyasint,omitempty"`
}

// ErrInvalidEvent is returned for events that name an unknown role or
// category, or list more TLVs than a dataset can hold.
var ErrInvalidEvent = errors.New("invalid dataset event")

// .dlog records are small and flat: an event map holding at most one
// payload map. Decoding is bounded accordingly so a corrupt file fails fast.
const (
	maxEventMapPairs = 16
	maxEventNesting  = 4

	// An empty TLV still takes a 2-byte header.
	maxEventTLVs = dataset.MaxSize / 2
)

var (
	eventEncMode cbor.EncMode
	eventDecMode cbor.DecMode
)

func init() {
	enc := cbor.CoreDetEncOptions()
	enc.Time = cbor.TimeRFC3339Nano

	var err error
	if eventEncMode, err = enc.EncMode(); err != nil {
		panic(fmt.Sprintf("log: event encoder mode: %v", err))
	}

	eventDecMode, err = cbor.DecOptions{
		MaxNestedLevels: maxEventNesting,
		MaxMapPairs:     maxEventMapPairs,
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("log: event decoder mode: %v", err))
	}
}

// Validate checks that the event describes something a local dataset
// store can produce.
func (e Event) Validate() error {
	if e.Role != dataset.RoleActive && e.Role != dataset.RolePending {
		return fmt.Errorf("%w: role %d", ErrInvalidEvent, e.Role)
	}
	if e.Category > CategoryError {
		return fmt.Errorf("%w: category %d", ErrInvalidEvent, e.Category)
	}
	if e.Operation != nil && len(e.Operation.TLVs) > maxEventTLVs {
		return fmt.Errorf("%w: %d TLVs", ErrInvalidEvent, len(e.Operation.TLVs))
	}
	return nil
}

// EncodeEvent encodes a single event.
func EncodeEvent(event Event) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return eventEncMode.Marshal(event)
}

// DecodeEvent decodes a single event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	if err := event.Validate(); err != nil {
		return Event{}, err
	}
	return event, nil
}

// Encoder writes events as a CBOR sequence.
type Encoder struct {
	enc *cbor.Encoder
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: eventEncMode.NewEncoder(w)}
}

// Encode writes one event. Invalid events are rejected without writing.
func (e *Encoder) Encode(event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	return e.enc.Encode(event)
}

// Decoder reads events from a CBOR sequence.
type Decoder struct {
	dec *cbor.Decoder
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: eventDecMode.NewDecoder(r)}
}

// Decode reads the next event. It returns io.EOF at the end of the stream.
func (d *Decoder) Decode() (Event, error) {
	var event Event
	if err := d.dec.Decode(&event); err != nil {
		return Event{}, err
	}
	if err := event.Validate(); err != nil {
		return Event{}, err
	}
	return event, nil
}
