package state

import (
	"github.com/gmkumar2005/disintegrate/internal/event"
	"github.com/gmkumar2005/disintegrate/internal/testutil"
)

// Accumulator is the mutable per-run projection a query folds events into.
type Accumulator[E event.Event, S any] interface {
	// MutateAll applies one persisted event to every interested sub-state.
	MutateAll(pe event.Persisted[E])

	// State converts the accumulator into the immutable state value.
	State() S
}

// Query describes the state shape a decision needs.
type Query[E event.Event, S any] interface {
	// Accumulator opens a fresh accumulator at the initial value.
	Accumulator() Accumulator[E, S]

	// EventTypes lists the event types the query reads.
	// An empty result means every type.
	EventTypes() []string
}

// Fold derives the state for q from history.
//
// Events are numbered 1..n in the order given, wrapped as persisted events
// and applied in that order. An empty history yields the initial state.
func Fold[E event.Event, S any](q Query[E, S], history []E) S {
	acc := q.Accumulator()
	clock := testutil.NewDeterministicClock()
	for _, e := range history {
		acc.MutateAll(event.NewPersisted(clock.Next(), e))
	}
	return acc.State()
}

// FoldPersisted derives the state for q from an already-numbered history,
// such as one read back from the event log. Sequence numbers are passed
// through unchanged.
func FoldPersisted[E event.Event, S any](q Query[E, S], history []event.Persisted[E]) S {
	acc := q.Accumulator()
	for _, pe := range history {
		acc.MutateAll(pe)
	}
	return acc.State()
}

// unionTypes merges the interest sets of several queries.
// Any member interested in everything makes the union "everything" (nil).
func unionTypes(sets ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, set := range sets {
		if len(set) == 0 {
			return nil
		}
		for _, t := range set {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}
