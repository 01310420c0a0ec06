package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
	"github.com/mash-protocol/meshcop-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByRole     map[dataset.Role]int
	EventsByCategory map[log.Category]int
	EventsByOp       map[log.Operation]int
	Stores           map[string]*StoreStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// StoreStats holds statistics for a single store instance.
type StoreStats struct {
	Role      dataset.Role
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Saves     int
	Errors    int

	// LastState is the most recent state change, if any.
	LastState *log.StateChangeEvent
}

// collectStats reads every event and aggregates it.
func collectStats(reader *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByRole:     make(map[dataset.Role]int),
		EventsByCategory: make(map[log.Category]int),
		EventsByOp:       make(map[log.Operation]int),
		Stores:           make(map[string]*StoreStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByRole[event.Role]++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		store, ok := stats.Stores[event.StoreID]
		if !ok {
			store = &StoreStats{
				Role:      event.Role,
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Stores[event.StoreID] = store
		}
		store.Events++
		if event.Timestamp.After(store.LastSeen) {
			store.LastSeen = event.Timestamp
		}

		switch {
		case event.Operation != nil:
			stats.EventsByOp[event.Operation.Op]++
			if event.Operation.Op == log.OpSave {
				store.Saves++
			}
		case event.StateChange != nil:
			store.LastState = event.StateChange
		case event.Error != nil:
			stats.Errors++
			store.Errors++
		}
	}

	return stats, nil
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := collectStats(reader)
	if err != nil {
		return err
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Dataset Store Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Role:")
	for _, role := range []dataset.Role{dataset.RoleActive, dataset.RolePending} {
		if count := stats.EventsByRole[role]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", role.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryOperation, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Operations:")
	for _, op := range []log.Operation{log.OpSave, log.OpRead, log.OpClear, log.OpRestore} {
		if count := stats.EventsByOp[op]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", op.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Stores: %d\n", len(stats.Stores))
	if len(stats.Stores) > 0 {
		type storeInfo struct {
			id    string
			stats *StoreStats
		}
		stores := make([]storeInfo, 0, len(stats.Stores))
		for id, ss := range stats.Stores {
			stores = append(stores, storeInfo{id, ss})
		}
		sort.Slice(stores, func(i, j int) bool {
			return stores[i].stats.FirstSeen.Before(stores[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, s := range stores {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %s, %d events, %d saves, duration %s\n",
				shortenStoreID(s.id), s.stats.Role, s.stats.Events, s.stats.Saves, duration)
			if st := s.stats.LastState; st != nil {
				ts := "none"
				if st.Timestamp != nil {
					ts = st.Timestamp.String()
				}
				fmt.Fprintf(w, "           Saved: %t, timestamp: %s\n", st.Saved, ts)
			}
			if s.stats.Errors > 0 {
				fmt.Fprintf(w, "           Errors: %d\n", s.stats.Errors)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
