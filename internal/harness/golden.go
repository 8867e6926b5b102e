package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/gmkumar2005/disintegrate/internal/event"
)

// ThenGolden compares the outcome against testdata/golden/<name>.golden.
//
// The outcome is serialized as canonical JSON: {"events":[{"data":...,
// "type":...}]} on success, {"error":"..."} on failure. To regenerate golden
// files, run:
//
//	go test ./... -update
func (w *WhenStep[E]) ThenGolden(name string) {
	w.t.Helper()
	if !w.consume("ThenGolden") {
		return
	}

	t, ok := w.t.(*testing.T)
	if !ok {
		w.t.Fatalf("harness: ThenGolden needs a *testing.T, got %T", w.t)
		return
	}

	data, err := GoldenBytes(w.outcome)
	if err != nil {
		t.Fatalf("harness: serialize outcome: %v", err)
		return
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

// GoldenBytes returns the canonical JSON ThenGolden compares.
func GoldenBytes[E event.Event](o Outcome[E]) ([]byte, error) {
	snap, err := o.snapshot()
	if err != nil {
		return nil, err
	}
	return event.MarshalCanonical(snap)
}
