package harness

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gmkumar2005/disintegrate/internal/decision"
	"github.com/gmkumar2005/disintegrate/internal/event"
)

// GivenStep holds a history waiting for the decision under test.
type GivenStep[E event.Event, S any] struct {
	t       testing.TB
	history []E
	used    bool
}

// Given starts a harness run with history, oldest event first.
//
// S is the state type of the decision that will be passed to When; E is
// inferred from the history. An empty history needs both: Given[S, E](t).
func Given[S any, E event.Event](t testing.TB, history ...E) *GivenStep[E, S] {
	t.Helper()
	return &GivenStep[E, S]{t: t, history: slices.Clone(history)}
}

// History returns the history the harness was given.
func (g *GivenStep[E, S]) History() []E {
	return slices.Clone(g.history)
}

// When folds the history into d's state and processes it once, capturing
// the outcome.
func (g *GivenStep[E, S]) When(d decision.Decision[E, S]) *WhenStep[E] {
	g.t.Helper()
	if g.used {
		g.t.Fatalf("harness: When called twice on the same Given step")
		return nil
	}
	g.used = true

	events, err := decision.Evaluate(d, g.history)
	return &WhenStep[E]{
		t:       g.t,
		history: g.history,
		outcome: Outcome[E]{Events: events, Err: err},
	}
}

// WhenStep holds the outcome of the decision under test.
type WhenStep[E event.Event] struct {
	t       testing.TB
	history []E
	outcome Outcome[E]
	used    bool
}

// History returns the history the harness was given.
func (w *WhenStep[E]) History() []E {
	return slices.Clone(w.history)
}

// Outcome returns the captured outcome without asserting anything.
func (w *WhenStep[E]) Outcome() Outcome[E] {
	return w.outcome.clone()
}

// Then asserts the decision succeeded with exactly expected, in order.
// No arguments asserts that it produced no events.
func (w *WhenStep[E]) Then(expected ...E) {
	w.t.Helper()
	if !w.consume("Then") {
		return
	}
	require.NoError(w.t, w.outcome.Err, "expected events, but the decision failed")
	require.Equal(w.t, normalize(expected), normalize(w.outcome.Events), "produced events differ")
}

// ThenErr asserts the decision failed with an error equal to expected.
func (w *WhenStep[E]) ThenErr(expected error) {
	w.t.Helper()
	if !w.consume("ThenErr") {
		return
	}
	require.Error(w.t, w.outcome.Err, "expected error %q, but the decision produced %d event(s): %v",
		expected, len(w.outcome.Events), w.outcome.Events)
	require.Equal(w.t, expected, w.outcome.Err, "decision failed with a different error")
}

// ThenErrorIs asserts the decision failed with an error whose chain
// contains target.
func (w *WhenStep[E]) ThenErrorIs(target error) {
	w.t.Helper()
	if !w.consume("ThenErrorIs") {
		return
	}
	require.Error(w.t, w.outcome.Err, "expected error %q, but the decision produced %d event(s): %v",
		target, len(w.outcome.Events), w.outcome.Events)
	require.ErrorIs(w.t, w.outcome.Err, target)
}

// ThenAssert asserts the decision succeeded, then hands the produced events
// to inspect. inspect is not called when the decision failed.
func (w *WhenStep[E]) ThenAssert(inspect func(t testing.TB, events []E)) {
	w.t.Helper()
	if !w.consume("ThenAssert") {
		return
	}
	require.NoError(w.t, w.outcome.Err, "expected events, but the decision failed")
	inspect(w.t, normalize(w.outcome.Events))
}

func (w *WhenStep[E]) consume(op string) bool {
	w.t.Helper()
	if w.used {
		w.t.Fatalf("harness: %s called on a When step whose outcome was already asserted", op)
		return false
	}
	w.used = true
	return true
}

// normalize treats nil and empty event lists alike and copies the input.
func normalize[E any](events []E) []E {
	if len(events) == 0 {
		return []E{}
	}
	return slices.Clone(events)
}
