// Package persistence keeps a node's Active and Pending operational datasets
// in local storage.
//
// A LocalDataset owns the persisted copy of one dataset role. It mediates
// between callers (commissioning, configuration) and two storage backends:
//   - a settings.Store that holds the dataset's TLV bytes
//   - optionally, a keystore.Store that holds the network key and PSKc
//
// # Secret Externalization
//
// When a SecureKeyPolicy is configured, every Save moves the NetworkKey and
// Pskc values into the key store and persists those TLVs zero-filled. Every
// Read puts the real values back. Settings storage never sees the secrets.
//
// # Delay Timer Aging
//
// A Pending dataset carries a DelayTimer that counts down to its activation.
// The store remembers the monotonic time of the last Save and, on every
// Read, returns the timer reduced by the time elapsed since then. Only a
// monotonic millisecond clock is needed; wraparound of the 32-bit counter
// is handled by unsigned arithmetic.
//
// # Cached State
//
// The saved flag and the cached timestamp are derived from persisted state
// and rebuilt by Restore at startup. They are never a second source of truth.
//
// # Concurrency
//
// LocalDataset is not safe for concurrent use. The host is expected to call
// it from a single goroutine (the node's event loop).
package persistence
