package harness

import (
	"slices"

	"github.com/gmkumar2005/disintegrate/internal/event"
)

// Outcome is what a decision returned: events on success or an error.
type Outcome[E event.Event] struct {
	Events []E
	Err    error
}

// Failed reports whether the decision returned an error.
func (o Outcome[E]) Failed() bool {
	return o.Err != nil
}

func (o Outcome[E]) clone() Outcome[E] {
	return Outcome[E]{Events: slices.Clone(o.Events), Err: o.Err}
}

// snapshot is the serialized form of an outcome used by golden files.
// Exactly one of events or error is set.
func (o Outcome[E]) snapshot() (map[string]any, error) {
	if o.Err != nil {
		return map[string]any{"error": o.Err.Error()}, nil
	}
	envs, err := event.WrapAll(o.Events)
	if err != nil {
		return nil, err
	}
	return map[string]any{"events": envs}, nil
}
