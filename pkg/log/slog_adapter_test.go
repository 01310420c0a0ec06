package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

func logJSON(t *testing.T, adapter func(*slog.Logger) *SlogAdapter, event Event) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter(slog.New(handler)).Log(event)

	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsOperationEvent(t *testing.T) {
	delay := uint32(1000)
	entry := logJSON(t, NewSlogAdapter, Event{
		Timestamp: time.Now(),
		StoreID:   "store-1",
		Role:      dataset.RolePending,
		Category:  CategoryOperation,
		Operation: &OperationEvent{
			Op:                  OpRead,
			Size:                24,
			TLVs:                []dataset.Type{dataset.TypeDelayTimer, dataset.TypePskc},
			SecretsExternalized: true,
			DelayTimer:          &delay,
		},
	})

	if entry["msg"] != "dataset" {
		t.Errorf("msg: got %v, want dataset", entry["msg"])
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("level: got %v, want DEBUG", entry["level"])
	}
	if entry["role"] != "Pending" {
		t.Errorf("role: got %v, want Pending", entry["role"])
	}
	if entry["op"] != "READ" {
		t.Errorf("op: got %v, want READ", entry["op"])
	}
	if entry["size"] != float64(24) {
		t.Errorf("size: got %v, want 24", entry["size"])
	}
	if entry["delay_timer_ms"] != float64(1000) {
		t.Errorf("delay_timer_ms: got %v, want 1000", entry["delay_timer_ms"])
	}
	tlvs, ok := entry["tlvs"].([]any)
	if !ok || len(tlvs) != 2 || tlvs[1] != "Pskc" {
		t.Errorf("tlvs: got %v", entry["tlvs"])
	}
}

func TestSlogAdapterLogsStateChange(t *testing.T) {
	ts := dataset.Timestamp{Seconds: 10}
	entry := logJSON(t, NewSlogAdapter, Event{
		StoreID:  "store-1",
		Category: CategoryState,
		StateChange: &StateChangeEvent{
			Saved:            true,
			TimestampPresent: true,
			Timestamp:        &ts,
			Reason:           "SAVE",
		},
	})

	if entry["saved"] != true {
		t.Errorf("saved: got %v, want true", entry["saved"])
	}
	if entry["timestamp"] != "10.0" {
		t.Errorf("timestamp: got %v, want 10.0", entry["timestamp"])
	}
	if entry["reason"] != "SAVE" {
		t.Errorf("reason: got %v, want SAVE", entry["reason"])
	}
}

func TestSlogAdapterLogsErrorAtConfiguredLevel(t *testing.T) {
	warn := func(l *slog.Logger) *SlogAdapter {
		return NewSlogAdapter(l).WithLevel(slog.LevelWarn)
	}
	entry := logJSON(t, warn, Event{
		Category: CategoryError,
		Error:    &ErrorEventData{Op: OpSave, Message: "disk full", Context: "persist"},
	})

	if entry["level"] != "WARN" {
		t.Errorf("level: got %v, want WARN", entry["level"])
	}
	if entry["error_msg"] != "disk full" {
		t.Errorf("error_msg: got %v", entry["error_msg"])
	}
	if entry["error_context"] != "persist" {
		t.Errorf("error_context: got %v", entry["error_context"])
	}
}
