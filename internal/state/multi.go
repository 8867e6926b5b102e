package state

import (
	"fmt"

	"github.com/gmkumar2005/disintegrate/internal/event"
)

// Projection is a type-erased named sub-state that can take part in a Multi.
// Part implements it.
type Projection[E event.Event] interface {
	Name() string
	EventTypes() []string
	Open() Sub[E]
}

// Sub is an open sub-state accumulator.
type Sub[E event.Event] interface {
	// Apply folds pe into the sub-state if it is interested and reports
	// whether it was.
	Apply(pe event.Persisted[E]) bool

	// Value returns the current sub-state value.
	Value() any
}

// Multi is a composite query over a fixed set of named sub-states.
type Multi[E event.Event] struct {
	parts []Projection[E]
}

// NewMulti builds a composite from parts. Names must be unique; a duplicate
// is a programming error and panics.
func NewMulti[E event.Event](parts ...Projection[E]) Multi[E] {
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if seen[p.Name()] {
			panic(fmt.Sprintf("state: duplicate sub-state name %q", p.Name()))
		}
		seen[p.Name()] = true
	}
	return Multi[E]{parts: parts}
}

// Names returns the sub-state names in declaration order.
func (m Multi[E]) Names() []string {
	names := make([]string, len(m.parts))
	for i, p := range m.parts {
		names[i] = p.Name()
	}
	return names
}

// EventTypes returns the union of the sub-states' event types.
func (m Multi[E]) EventTypes() []string {
	sets := make([][]string, len(m.parts))
	for i, p := range m.parts {
		sets[i] = p.EventTypes()
	}
	return unionTypes(sets...)
}

// Accumulator opens every sub-state at its initial value.
func (m Multi[E]) Accumulator() Accumulator[E, Snapshot] {
	acc := &multiAccumulator[E]{
		names: m.Names(),
		subs:  make([]Sub[E], len(m.parts)),
	}
	for i, p := range m.parts {
		acc.subs[i] = p.Open()
	}
	return acc
}

type multiAccumulator[E event.Event] struct {
	names []string
	subs  []Sub[E]
}

// MutateAll broadcasts pe to every sub-state.
func (a *multiAccumulator[E]) MutateAll(pe event.Persisted[E]) {
	for _, sub := range a.subs {
		sub.Apply(pe)
	}
}

func (a *multiAccumulator[E]) State() Snapshot {
	values := make(map[string]any, len(a.subs))
	for i, sub := range a.subs {
		values[a.names[i]] = sub.Value()
	}
	return Snapshot{names: a.names, values: values}
}

// Snapshot is the immutable state of a Multi: sub-state values by name.
type Snapshot struct {
	names  []string
	values map[string]any
}

// Names returns the sub-state names in declaration order.
func (s Snapshot) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Map returns a copy of the sub-state values keyed by name.
func (s Snapshot) Map() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Value returns the sub-state called name as V.
// ok is false if the name is unknown or the value has another type.
func Value[V any](s Snapshot, name string) (V, bool) {
	raw, exists := s.values[name]
	if !exists {
		var zero V
		return zero, false
	}
	v, ok := raw.(V)
	return v, ok
}

// MustValue is like Value but panics when the sub-state is missing or has
// another type. Decisions use it for sub-states their own query declared.
func MustValue[V any](s Snapshot, name string) V {
	v, ok := Value[V](s, name)
	if !ok {
		var zero V
		panic(fmt.Sprintf("state: no sub-state %q of type %T", name, zero))
	}
	return v
}
