// Package settings provides the persistent settings storage that holds a
// node's operational datasets.
//
// Each dataset role owns exactly one opaque blob. The blob is the dataset's
// TLV encoding; this package does not interpret it beyond enforcing the
// dataset size limit.
//
// Three backends are available:
//   - MemoryStore: volatile, for tests and nodes without flash
//   - FileStore: one file per role in a base directory
//   - LevelDBStore: a LevelDB database shared with other node settings
package settings
