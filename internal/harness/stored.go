package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gmkumar2005/disintegrate/internal/event"
)

// Loader reads persisted events. store.Log implements it.
type Loader[E event.Event] interface {
	Load(ctx context.Context, eventTypes []string) ([]event.Persisted[E], error)
}

// GivenStored starts a harness run with every event in log, in sequence
// order. The fold renumbers them 1..N like any other history.
func GivenStored[S any, E event.Event](t testing.TB, log Loader[E]) *GivenStep[E, S] {
	t.Helper()
	stored, err := log.Load(context.Background(), nil)
	require.NoError(t, err, "harness: load stored history")
	return Given[S](t, event.Unwrap(stored)...)
}
