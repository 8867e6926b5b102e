package decision

import (
	"context"
	"log/slog"

	"github.com/gmkumar2005/disintegrate/internal/event"
	"github.com/gmkumar2005/disintegrate/internal/state"
)

// Decision is a unit of business logic over state S producing events E.
//
// StateQuery is called once per evaluation, before folding. Process is
// called once, after folding, and must depend only on its argument.
// A non-nil error is a domain outcome (e.g. a business-rule violation),
// not a fault.
type Decision[E event.Event, S any] interface {
	StateQuery() state.Query[E, S]
	Process(S) ([]E, error)
}

// Func adapts a query and a function into a Decision.
type Func[E event.Event, S any] struct {
	Query state.Query[E, S]
	Fn    func(S) ([]E, error)
}

// StateQuery implements Decision.
func (f Func[E, S]) StateQuery() state.Query[E, S] {
	return f.Query
}

// Process implements Decision.
func (f Func[E, S]) Process(s S) ([]E, error) {
	return f.Fn(s)
}

// Evaluate folds history into the state d asks for and processes it once.
func Evaluate[E event.Event, S any](d Decision[E, S], history []E) ([]E, error) {
	q := d.StateQuery()
	s := state.Fold(q, history)
	return d.Process(s)
}

// Runner is a Decision with its state type erased, so decisions of one
// domain with different state shapes can sit side by side in a Registry.
type Runner[E event.Event] interface {
	// EventTypes lists the event types the decision's query reads.
	EventTypes() []string

	// Run evaluates the decision against an in-memory history.
	Run(history []E) ([]E, error)

	// Execute evaluates the decision against an event log.
	Execute(ctx context.Context, log EventLog[E], logger *slog.Logger) ([]event.Persisted[E], error)
}

// Bind erases the state type of d.
func Bind[E event.Event, S any](d Decision[E, S]) Runner[E] {
	return bound[E, S]{d: d}
}

type bound[E event.Event, S any] struct {
	d Decision[E, S]
}

func (b bound[E, S]) EventTypes() []string {
	return b.d.StateQuery().EventTypes()
}

func (b bound[E, S]) Run(history []E) ([]E, error) {
	return Evaluate(b.d, history)
}

func (b bound[E, S]) Execute(ctx context.Context, log EventLog[E], logger *slog.Logger) ([]event.Persisted[E], error) {
	return Execute(ctx, log, b.d, logger)
}
