// Package state derives the state a decision reads from an event history.
//
// A decision declares the shape it needs with a Query. The query opens a
// fresh, mutable Accumulator per run; Fold numbers the history 1..n, hands
// every persisted event to the accumulator and finally converts it into the
// immutable state value.
//
// # Sub-states
//
// A Part is a single named projection: an initial value, a set of event
// types it is interested in, an optional filter and a mutate function.
// Parts compose in two ways:
//
//   - Multi groups any number of parts by name; its state is a Snapshot read
//     with Value or MustValue.
//   - Join2 pairs two queries of different types; its state is a typed Pair.
//
// Both broadcast: every event reaches every sub-state, and each sub-state
// decides on its own whether the event concerns it. Uninterested sub-states
// ignore the event, so folding never fails.
package state
