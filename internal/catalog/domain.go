package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/gmkumar2005/disintegrate/internal/decision"
	"github.com/gmkumar2005/disintegrate/internal/event"
	"github.com/gmkumar2005/disintegrate/internal/scenario"
	"github.com/gmkumar2005/disintegrate/internal/state"
	"github.com/gmkumar2005/disintegrate/internal/store"
)

// Domain is a named event-sourced domain with its type parameters erased.
type Domain interface {
	Name() string
	EventTypes() []string
	Decisions() []string

	// RunScenario runs a declarative scenario against the domain.
	RunScenario(s *scenario.Scenario, logger *slog.Logger) (*scenario.Result, error)

	// Execute builds the named decision from args, runs it against the
	// stored log and appends what it produces. A domain error from the
	// decision comes back as *RejectedError.
	Execute(ctx context.Context, st *store.Store, name string, args json.RawMessage, logger *slog.Logger) ([]Entry, error)

	// Log returns the domain's stored events in sequence order.
	Log(ctx context.Context, st *store.Store) ([]Entry, error)

	// Replay folds the domain's summary projection over the stored log.
	Replay(ctx context.Context, st *store.Store) (*ReplayReport, error)
}

// Entry is one event as the CLI shows it.
type Entry struct {
	Seq  int64           `json:"seq"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ReplayReport is the result of folding a stored log twice.
type ReplayReport struct {
	Domain        string         `json:"domain"`
	Events        int            `json:"events"`
	LastSeq       int64          `json:"last_seq"`
	Digest        string         `json:"digest"`
	Deterministic bool           `json:"deterministic"`
	State         map[string]any `json:"state"`
}

// Binding implements Domain for event type E.
type Binding[E event.Event] struct {
	name     string
	codec    *event.Codec[E]
	registry *decision.Registry[E]
	summary  state.Multi[E]
}

// Bind creates a Domain from a codec, a decision registry and the
// projection replay folds.
func Bind[E event.Event](name string, codec *event.Codec[E], registry *decision.Registry[E], summary state.Multi[E]) *Binding[E] {
	return &Binding[E]{name: name, codec: codec, registry: registry, summary: summary}
}

func (b *Binding[E]) Name() string { return b.name }

func (b *Binding[E]) EventTypes() []string { return b.codec.Types() }

func (b *Binding[E]) Decisions() []string { return b.registry.Names() }

func (b *Binding[E]) RunScenario(s *scenario.Scenario, logger *slog.Logger) (*scenario.Result, error) {
	if s.Domain != b.name {
		return nil, fmt.Errorf("scenario %q targets domain %q, not %q", s.Name, s.Domain, b.name)
	}
	return scenario.Run(s, b.codec, b.registry, logger)
}

func (b *Binding[E]) Execute(ctx context.Context, st *store.Store, name string, args json.RawMessage, logger *slog.Logger) ([]Entry, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	runner, err := b.registry.Build(name, args)
	if err != nil {
		return nil, err
	}

	log := &trackedLog[E]{EventLog: store.NewLog(st, b.codec)}
	appended, err := runner.Execute(ctx, log, logger.With("domain", b.name, "decision", name))
	if err != nil {
		if log.failed {
			return nil, err
		}
		return nil, &RejectedError{Decision: name, Err: err}
	}
	return b.entries(appended)
}

// RejectedError is returned by Execute when the decision itself refused to
// produce events. Err is the domain error.
type RejectedError struct {
	Decision string
	Err      error
}

// Error implements the error interface.
func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected: %v", e.Decision, e.Err)
}

func (e *RejectedError) Unwrap() error { return e.Err }

// trackedLog records whether the event log itself failed, which separates
// store errors from decision errors.
type trackedLog[E event.Event] struct {
	decision.EventLog[E]
	failed bool
}

func (l *trackedLog[E]) Load(ctx context.Context, eventTypes []string) ([]event.Persisted[E], error) {
	history, err := l.EventLog.Load(ctx, eventTypes)
	if err != nil {
		l.failed = true
	}
	return history, err
}

func (l *trackedLog[E]) AppendAfter(ctx context.Context, lastSeq int64, eventTypes []string, events []E) ([]event.Persisted[E], error) {
	appended, err := l.EventLog.AppendAfter(ctx, lastSeq, eventTypes, events)
	if err != nil {
		l.failed = true
	}
	return appended, err
}

func (b *Binding[E]) Replay(ctx context.Context, st *store.Store) (*ReplayReport, error) {
	history, err := store.NewLog(st, b.codec).Load(ctx, b.codec.Types())
	if err != nil {
		return nil, fmt.Errorf("load %s log: %w", b.name, err)
	}

	first := state.FoldPersisted[E, state.Snapshot](b.summary, history)
	second := state.FoldPersisted[E, state.Snapshot](b.summary, history)

	firstDigest, err := event.DigestOf(event.DomainState, first.Map())
	if err != nil {
		return nil, err
	}
	secondDigest, err := event.DigestOf(event.DomainState, second.Map())
	if err != nil {
		return nil, err
	}

	report := &ReplayReport{
		Domain:        b.name,
		Events:        len(history),
		Digest:        firstDigest,
		Deterministic: firstDigest == secondDigest,
		State:         first.Map(),
	}
	if n := len(history); n > 0 {
		report.LastSeq = history[n-1].Seq()
	}
	return report, nil
}

// Log returns the stored events of this domain, decoded and re-encoded so
// records the codec does not know fail loudly.
func (b *Binding[E]) Log(ctx context.Context, st *store.Store) ([]Entry, error) {
	history, err := store.NewLog(st, b.codec).Load(ctx, b.codec.Types())
	if err != nil {
		return nil, err
	}
	return b.entries(history)
}

func (b *Binding[E]) entries(events []event.Persisted[E]) ([]Entry, error) {
	out := make([]Entry, 0, len(events))
	for _, pe := range events {
		env, err := b.codec.Encode(pe.Event())
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Seq: pe.Seq(), Type: env.Type, Data: env.Data})
	}
	return out, nil
}

// UnknownDomainError is returned when no domain has the requested name.
type UnknownDomainError struct {
	Name  string
	Known []string
}

// Error implements the error interface.
func (e *UnknownDomainError) Error() string {
	return fmt.Sprintf("unknown domain %q (known: %v)", e.Name, e.Known)
}

// Catalog is a set of domains keyed by name.
type Catalog struct {
	domains map[string]Domain
}

// New builds a catalog. Duplicate names panic.
func New(domains ...Domain) *Catalog {
	c := &Catalog{domains: make(map[string]Domain, len(domains))}
	for _, d := range domains {
		if _, exists := c.domains[d.Name()]; exists {
			panic(fmt.Sprintf("catalog: domain %q registered twice", d.Name()))
		}
		c.domains[d.Name()] = d
	}
	return c
}

// Names returns the domain names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.domains))
	for name := range c.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the domain called name.
func (c *Catalog) Lookup(name string) (Domain, error) {
	d, ok := c.domains[name]
	if !ok {
		return nil, &UnknownDomainError{Name: name, Known: c.Names()}
	}
	return d, nil
}
