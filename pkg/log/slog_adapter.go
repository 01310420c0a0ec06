package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes dataset events to an slog.Logger.
// Useful for development when you want to see events in the console.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given
// slog.Logger at Debug level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns an adapter that logs at the given level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("store_id", event.StoreID),
		slog.String("role", event.Role.String()),
		slog.String("category", event.Category.String()),
	}

	switch {
	case event.Operation != nil:
		op := event.Operation
		attrs = append(attrs,
			slog.String("op", op.Op.String()),
			slog.Int("size", op.Size),
		)
		if len(op.TLVs) > 0 {
			names := make([]string, len(op.TLVs))
			for i, t := range op.TLVs {
				names[i] = t.String()
			}
			attrs = append(attrs, slog.Any("tlvs", names))
		}
		if op.SecretsExternalized {
			attrs = append(attrs, slog.Bool("secrets_externalized", true))
		}
		if op.DelayTimer != nil {
			attrs = append(attrs, slog.Uint64("delay_timer_ms", uint64(*op.DelayTimer)))
		}
		if op.Duration > 0 {
			attrs = append(attrs, slog.Duration("duration", op.Duration))
		}
	case event.StateChange != nil:
		sc := event.StateChange
		attrs = append(attrs,
			slog.Bool("saved", sc.Saved),
			slog.Bool("timestamp_present", sc.TimestampPresent),
		)
		if sc.Timestamp != nil {
			attrs = append(attrs, slog.String("timestamp", sc.Timestamp.String()))
		}
		if sc.Reason != "" {
			attrs = append(attrs, slog.String("reason", sc.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("op", event.Error.Op.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), a.level, "dataset", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
