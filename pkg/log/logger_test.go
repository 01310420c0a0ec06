package log

import (
	"testing"
	"time"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

type captureLogger struct {
	events []Event
}

func (c *captureLogger) Log(event Event) {
	c.events = append(c.events, event)
}

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{
		Timestamp: time.Now(),
		StoreID:   "store-1",
		Role:      dataset.RolePending,
		Category:  CategoryOperation,
	}
	logger.Log(event)

	event.Operation = &OperationEvent{Op: OpSave, Size: 42}
	logger.Log(event)

	event.Operation = nil
	event.StateChange = &StateChangeEvent{Saved: true}
	logger.Log(event)

	event.StateChange = nil
	event.Error = &ErrorEventData{Op: OpRead, Message: "boom"}
	logger.Log(event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}

func TestMultiLoggerFansOut(t *testing.T) {
	a := &captureLogger{}
	b := &captureLogger{}
	multi := NewMultiLogger(a, nil, b)

	multi.Log(Event{StoreID: "s1"})
	multi.Log(Event{StoreID: "s2"})

	for name, c := range map[string]*captureLogger{"a": a, "b": b} {
		if len(c.events) != 2 {
			t.Fatalf("logger %s got %d events, want 2", name, len(c.events))
		}
		if c.events[1].StoreID != "s2" {
			t.Errorf("logger %s second event StoreID = %q, want s2", name, c.events[1].StoreID)
		}
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	NewMultiLogger().Log(Event{})
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{CategoryOperation.String(), "OPERATION"},
		{CategoryState.String(), "STATE"},
		{CategoryError.String(), "ERROR"},
		{Category(99).String(), "UNKNOWN"},
		{OpSave.String(), "SAVE"},
		{OpRead.String(), "READ"},
		{OpClear.String(), "CLEAR"},
		{OpRestore.String(), "RESTORE"},
		{Operation(99).String(), "UNKNOWN"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestParseOperation(t *testing.T) {
	op, ok := ParseOperation("CLEAR")
	if !ok || op != OpClear {
		t.Errorf("ParseOperation(CLEAR) = %v, %v", op, ok)
	}
	if _, ok := ParseOperation("clear"); ok {
		t.Error("ParseOperation should be case-sensitive")
	}
}
