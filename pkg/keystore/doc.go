// Package keystore provides secure storage for long-term secrets.
//
// Secrets are addressed by an opaque Ref chosen by the caller. Raw key
// bytes only cross the package boundary on ImportKey and ExportKey; callers
// persist the Ref, never the key.
//
// Two implementations are provided:
//   - MemoryStore: keys live in process memory (tests, volatile nodes)
//   - FileStore: persistent keys are sealed with XChaCha20-Poly1305 under a
//     key derived from a node master secret, one file per Ref
package keystore
