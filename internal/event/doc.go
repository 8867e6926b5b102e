// Package event provides the domain-fact abstraction shared by every other
// package.
//
// An Event is an immutable value naming its own variant through EventType.
// A Persisted event pairs an Event with the position it holds in a history.
// Sequence numbers are assigned by whoever builds the history (the state
// fold, or the event log); this package never validates them.
//
// The package also owns the JSON boundary for events:
//   - Codec maps variant names to concrete Go types so histories can be
//     read back from YAML scenarios or the SQLite event log
//   - MarshalCanonical produces deterministic JSON (sorted keys, NFC
//     strings, no HTML escaping) for golden snapshots and digests
//   - Digest computes a domain-separated SHA-256 over canonical bytes
//
// This package imports nothing internal.
package event
