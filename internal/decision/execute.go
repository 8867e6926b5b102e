package decision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gmkumar2005/disintegrate/internal/event"
	"github.com/gmkumar2005/disintegrate/internal/state"
)

// ErrConcurrentModification is returned by EventLog.AppendAfter when events
// the decision depends on were appended after its history was loaded.
var ErrConcurrentModification = errors.New("concurrent modification of decision state")

// EventLog is the part of an event store Execute needs.
type EventLog[E event.Event] interface {
	// Load returns the events of the given types (all if empty) in
	// sequence order.
	Load(ctx context.Context, eventTypes []string) ([]event.Persisted[E], error)

	// AppendAfter appends events, failing with ErrConcurrentModification if
	// any event of eventTypes has a sequence number above lastSeq.
	AppendAfter(ctx context.Context, lastSeq int64, eventTypes []string, events []E) ([]event.Persisted[E], error)
}

// Execute loads the history d's query reads, folds it, processes it once and
// appends the resulting events.
//
// Domain errors from Process are returned unwrapped so callers can compare
// them directly; infrastructure errors are wrapped.
func Execute[E event.Event, S any](ctx context.Context, log EventLog[E], d Decision[E, S], logger *slog.Logger) ([]event.Persisted[E], error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	q := d.StateQuery()
	types := q.EventTypes()

	history, err := log.Load(ctx, types)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var lastSeq int64
	if n := len(history); n > 0 {
		lastSeq = history[n-1].Seq()
	}

	s := state.FoldPersisted(q, history)
	events, err := d.Process(s)
	if err != nil {
		logger.Info("decision rejected",
			"history", len(history),
			"last_seq", lastSeq,
			"error", err,
		)
		return nil, err
	}

	if len(events) == 0 {
		logger.Info("decision produced no events", "history", len(history), "last_seq", lastSeq)
		return []event.Persisted[E]{}, nil
	}

	persisted, err := log.AppendAfter(ctx, lastSeq, types, events)
	if err != nil {
		return nil, fmt.Errorf("append events: %w", err)
	}

	logger.Info("decision executed",
		"history", len(history),
		"last_seq", lastSeq,
		"appended", len(persisted),
	)
	return persisted, nil
}
