// Package dataset defines the operational dataset of a mesh network node.
//
// A dataset is a compact sequence of TLV records (type, length, value) that
// carries everything a node needs to join and operate on the network: the
// network key, PAN identifiers, channel, mesh-local prefix, PSKc and the
// Active/Pending timestamps.
//
// # Roles
//
// A node keeps up to two datasets:
//   - Active: the configuration currently in use
//   - Pending: a future configuration, gated by a DelayTimer, that replaces
//     the Active dataset once the timer reaches zero
//
// # Forms
//
// The same content is available in three forms:
//   - Dataset: the TLV byte buffer, which is also the persisted format
//   - Info: a structured form with one optional field per known TLV
//   - TLVs: a flat fixed-size buffer, convenient for APIs that copy by value
//
// # Validation
//
// This package only checks structural well-formedness (no truncated
// records, no duplicate tags, total size within MaxSize). Field-level
// validation is left to the commissioning layer.
package dataset
