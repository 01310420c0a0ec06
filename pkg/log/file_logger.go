package log

import (
	"os"
	"sync"
)

// FileLogger appends dataset events to a file in CBOR format.
// It is safe for concurrent use from multiple goroutines.
type FileLogger struct {
	file    *os.File
	encoder *Encoder
	mu      sync.Mutex
	closed  bool

	// syncEach forces an fsync after every event.
	syncEach bool
}

// FileLoggerOption configures a FileLogger.
type FileLoggerOption func(*FileLogger)

// WithSyncEachEvent makes the logger fsync after every event.
func WithSyncEachEvent() FileLoggerOption {
	return func(l *FileLogger) { l.syncEach = true }
}

// NewFileLogger creates a new FileLogger that writes to the specified path.
// If the file exists, new events are appended. The file is created with
// permissions 0644 if it doesn't exist.
func NewFileLogger(path string, opts ...FileLoggerOption) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l := &FileLogger{
		file:    f,
		encoder: NewEncoder(f),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Log writes an event to the log file.
// This method is safe for concurrent use.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	// Encoding errors are dropped; event logging must never fail a store operation.
	if err := l.encoder.Encode(event); err == nil && l.syncEach {
		_ = l.file.Sync()
	}
}

// Sync flushes the log file to stable storage.
func (l *FileLogger) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	return l.file.Sync()
}

// Close closes the log file.
// It is safe to call Close multiple times.
// After Close is called, subsequent Log calls are silently ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	return l.file.Close()
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
