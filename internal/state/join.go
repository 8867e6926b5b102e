package state

import "github.com/gmkumar2005/disintegrate/internal/event"

// Pair is the state of a Join2 query.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Join2 combines two queries into one whose state is a Pair.
// Every event is offered to both sides.
func Join2[E event.Event, A, B any](first Query[E, A], second Query[E, B]) Query[E, Pair[A, B]] {
	return join2[E, A, B]{first: first, second: second}
}

type join2[E event.Event, A, B any] struct {
	first  Query[E, A]
	second Query[E, B]
}

func (j join2[E, A, B]) Accumulator() Accumulator[E, Pair[A, B]] {
	return &join2Accumulator[E, A, B]{
		first:  j.first.Accumulator(),
		second: j.second.Accumulator(),
	}
}

func (j join2[E, A, B]) EventTypes() []string {
	return unionTypes(j.first.EventTypes(), j.second.EventTypes())
}

type join2Accumulator[E event.Event, A, B any] struct {
	first  Accumulator[E, A]
	second Accumulator[E, B]
}

func (a *join2Accumulator[E, A, B]) MutateAll(pe event.Persisted[E]) {
	a.first.MutateAll(pe)
	a.second.MutateAll(pe)
}

func (a *join2Accumulator[E, A, B]) State() Pair[A, B] {
	return Pair[A, B]{First: a.first.State(), Second: a.second.State()}
}
