// Package commands implements the mash-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
	"github.com/mash-protocol/meshcop-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Role     *dataset.Role
	Category *log.Category
	Op       *log.Operation
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{Role: f.Role, Category: f.Category, Op: f.Op}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [store:id] ROLE Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	storeID := shortenStoreID(event.StoreID)

	var typeLabel string
	switch {
	case event.Operation != nil:
		typeLabel = event.Operation.Op.String()
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [store:%s] %-7s %s\n", ts, storeID, event.Role.String(), typeLabel)

	switch {
	case event.Operation != nil:
		formatOperationDetails(w, event.Operation)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenStoreID returns the first 8 characters of the store ID.
func shortenStoreID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatOperationDetails(w io.Writer, op *log.OperationEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", op.Size)
	if len(op.TLVs) > 0 {
		fmt.Fprintf(w, "  TLVs: %s\n", formatTLVTypes(op.TLVs))
	}
	if op.SecretsExternalized {
		fmt.Fprintln(w, "  Secrets: key store")
	}
	if op.DelayTimer != nil {
		fmt.Fprintf(w, "  DelayTimer: %dms\n", *op.DelayTimer)
	}
	if op.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(op.Duration))
	}
}

func formatTLVTypes(types []dataset.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Saved: %t\n", sc.Saved)
	if sc.Timestamp != nil {
		fmt.Fprintf(w, "  Timestamp: %s\n", sc.Timestamp)
	} else {
		fmt.Fprintln(w, "  Timestamp: none")
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Op: %s\n", err.Op.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseRoleFlag parses a role string from command-line flag (case-insensitive).
func ParseRoleFlag(s string) (dataset.Role, error) {
	return dataset.ParseRole(strings.ToLower(s))
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "operation":
		return log.CategoryOperation, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be operation, state, or error)", s)
	}
}

// ParseOpFlag parses an operation string from command-line flag (case-insensitive).
func ParseOpFlag(s string) (log.Operation, error) {
	op, ok := log.ParseOperation(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid op: %s (must be save, read, clear, or restore)", s)
	}
	return op, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
