// Package log provides structured event logging for local dataset storage.
//
// This package defines the Logger interface and Event types for capturing
// every save, read, clear and restore performed on the Active and Pending
// datasets, plus the resulting changes of cached state. It is separate from
// operational logging (slog): the event trace is machine-readable and meant
// for post-mortem analysis of dataset lifecycles on a node.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/var/lib/mesh/dataset.dlog")
//
//	// Both: use MultiLogger
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - Operation: a completed store operation (OperationEvent)
//   - State: saved flag or cached timestamp changed (StateChangeEvent)
//   - Error: an operation failed (ErrorEventData)
//
// Events never contain key material.
//
// # File Format
//
// Log files use CBOR encoding with the .dlog extension. The mash-log CLI
// tool provides viewing, filtering and export capabilities.
package log
