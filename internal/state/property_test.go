package state

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

// historyFrom turns generated item names into a history of add/remove events.
func historyFrom(names []string) []testEvent {
	history := make([]testEvent, 0, len(names))
	for i, n := range names {
		if i%3 == 2 {
			history = append(history, itemRemoved{Item: n, Cart: "c1"})
			continue
		}
		history = append(history, itemAdded{Item: n, Cart: "c1"})
	}
	return history
}

// TestFold_DeterminismProperty verifies Fold(h) == Fold(h) for any h.
func TestFold_DeterminismProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("folding the same history twice yields the same state", prop.ForAll(
		func(names []string) bool {
			history := historyFrom(names)
			m := NewMulti[testEvent](items("c1"), recorder("all"))

			first := Fold[testEvent, Snapshot](m, history)
			second := Fold[testEvent, Snapshot](m, history)

			return assert.ObjectsAreEqual(first.Map(), second.Map())
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// TestFold_NumberingProperty verifies the fold observes 1..n in order.
func TestFold_NumberingProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("sequence numbers are 1..n in supplied order", prop.ForAll(
		func(names []string) bool {
			history := historyFrom(names)
			s := Fold[testEvent, seen](recorder("all"), history)

			if len(s.Seqs) != len(history) {
				return false
			}
			for i, seq := range s.Seqs {
				if seq != int64(i+1) || s.Types[i] != history[i].EventType() {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
