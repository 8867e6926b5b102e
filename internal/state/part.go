package state

import (
	"slices"

	"github.com/gmkumar2005/disintegrate/internal/event"
)

// Part is a named sub-state of value type V.
//
// A part is interested in an event when the event's type is one of its
// declared types (or it declared none) and the optional Where filter
// accepts it. Mutate receives the current value and returns the next one.
// Initial is called once per accumulator so runs never share values such
// as maps or slices.
//
// A Part is itself a Query, so a decision that needs a single projection
// can return it directly.
type Part[E event.Event, V any] struct {
	name    string
	initial func() V
	mutate  func(V, event.Persisted[E]) V
	types   []string
	where   func(E) bool
}

// NewPart creates a sub-state interested in eventTypes (all types if none).
func NewPart[E event.Event, V any](
	name string,
	initial func() V,
	mutate func(V, event.Persisted[E]) V,
	eventTypes ...string,
) Part[E, V] {
	return Part[E, V]{
		name:    name,
		initial: initial,
		mutate:  mutate,
		types:   slices.Clone(eventTypes),
	}
}

// Where returns a copy of the part that additionally requires pred to
// accept an event, e.g. to restrict a projection to one aggregate ID.
func (p Part[E, V]) Where(pred func(E) bool) Part[E, V] {
	p.where = pred
	return p
}

// Name returns the sub-state name.
func (p Part[E, V]) Name() string {
	return p.name
}

// EventTypes returns the declared event types.
func (p Part[E, V]) EventTypes() []string {
	return slices.Clone(p.types)
}

// Interested reports whether e concerns this part.
func (p Part[E, V]) Interested(e E) bool {
	if len(p.types) > 0 && !slices.Contains(p.types, e.EventType()) {
		return false
	}
	if p.where != nil && !p.where(e) {
		return false
	}
	return true
}

// Accumulator opens a fresh accumulator at the initial value.
func (p Part[E, V]) Accumulator() Accumulator[E, V] {
	return p.open()
}

// Open implements Projection.
func (p Part[E, V]) Open() Sub[E] {
	return p.open()
}

func (p Part[E, V]) open() *partAccumulator[E, V] {
	var v V
	if p.initial != nil {
		v = p.initial()
	}
	return &partAccumulator[E, V]{part: p, value: v}
}

type partAccumulator[E event.Event, V any] struct {
	part  Part[E, V]
	value V
}

func (a *partAccumulator[E, V]) MutateAll(pe event.Persisted[E]) {
	a.Apply(pe)
}

func (a *partAccumulator[E, V]) Apply(pe event.Persisted[E]) bool {
	if !a.part.Interested(pe.Event()) {
		return false
	}
	a.value = a.part.mutate(a.value, pe)
	return true
}

func (a *partAccumulator[E, V]) State() V {
	return a.value
}

func (a *partAccumulator[E, V]) Value() any {
	return a.value
}
