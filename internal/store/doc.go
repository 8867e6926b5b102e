// Package store provides a SQLite-backed append-only event log.
//
// Every record carries:
//   - seq: position in the log (INTEGER PRIMARY KEY, assigned on append)
//   - id: a unique record ID (UUIDv7 by default, injectable for tests)
//   - event_type: the variant name, indexed for filtered reads
//   - payload: the event's JSON
//   - digest: content address of type + canonical payload
//
// # Ordering
//
// All reads use ORDER BY seq ASC. Sequence numbers are the only notion of
// time in the log; wall-clock timestamps are never stored, so replaying a
// log always produces the same fold.
//
// # Optimistic concurrency
//
// AppendAfter refuses to append when events of the caller's interest set
// were written after the sequence number the caller last read. The check and
// the insert run in one transaction.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Log adapts a Store to typed events through an event.Codec and satisfies
// decision.EventLog.
package store
