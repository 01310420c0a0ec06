package log

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

// Filter specifies criteria for filtering log events.
// Empty/nil fields match all events for that criterion.
type Filter struct {
	// StoreID filters by exact store instance ID.
	StoreID string

	// Role filters by dataset role.
	Role *dataset.Role

	// Category filters by event category.
	Category *Category

	// Op filters operation and error events by operation.
	// State change events never match an Op filter.
	Op *Operation

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time
}

// Matches returns true if the event matches all filter criteria.
func (f *Filter) Matches(event Event) bool {
	if f.StoreID != "" && event.StoreID != f.StoreID {
		return false
	}
	if f.Role != nil && event.Role != *f.Role {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.Op != nil {
		switch {
		case event.Operation != nil:
			if event.Operation.Op != *f.Op {
				return false
			}
		case event.Error != nil:
			if event.Error.Op != *f.Op {
				return false
			}
		default:
			return false
		}
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader reads dataset events from a CBOR-encoded log file.
// It streams events one at a time, so large traces need little memory.
type Reader struct {
	file    *os.File
	decoder *Decoder
	filter  Filter
}

// NewReader creates a Reader that reads all events from the specified log file.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader that reads events matching the filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: NewDecoder(f),
		filter:  filter,
	}, nil
}

// Next returns the next event that matches the filter.
// Returns io.EOF when no more events are available.
func (r *Reader) Next() (Event, error) {
	for {
		event, err := r.decoder.Decode()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}

		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// ReadAll returns all remaining events that match the filter.
func (r *Reader) ReadAll() ([]Event, error) {
	var events []Event
	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
