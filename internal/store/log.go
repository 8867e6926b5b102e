package store

import (
	"context"
	"fmt"

	"github.com/gmkumar2005/disintegrate/internal/event"
)

// Log is a typed view of a Store. It implements decision.EventLog[E].
type Log[E event.Event] struct {
	store *Store
	codec *event.Codec[E]
}

// NewLog binds a store to a domain codec.
func NewLog[E event.Event](s *Store, codec *event.Codec[E]) *Log[E] {
	return &Log[E]{store: s, codec: codec}
}

// Load reads and decodes the events of eventTypes in sequence order.
func (l *Log[E]) Load(ctx context.Context, eventTypes []string) ([]event.Persisted[E], error) {
	records, err := l.store.Read(ctx, eventTypes)
	if err != nil {
		return nil, err
	}
	return l.decode(records)
}

// AppendAfter encodes events and appends them if nothing relevant was
// written after lastSeq.
func (l *Log[E]) AppendAfter(ctx context.Context, lastSeq int64, eventTypes []string, events []E) ([]event.Persisted[E], error) {
	envs, err := l.encode(events)
	if err != nil {
		return nil, err
	}
	records, err := l.store.AppendAfter(ctx, lastSeq, eventTypes, envs)
	if err != nil {
		return nil, err
	}
	return persisted(records, events), nil
}

// Append encodes and appends events unconditionally. Used to seed logs.
func (l *Log[E]) Append(ctx context.Context, events ...E) ([]event.Persisted[E], error) {
	envs, err := l.encode(events)
	if err != nil {
		return nil, err
	}
	records, err := l.store.Append(ctx, envs)
	if err != nil {
		return nil, err
	}
	return persisted(records, events), nil
}

func (l *Log[E]) encode(events []E) ([]event.Envelope, error) {
	envs := make([]event.Envelope, 0, len(events))
	for i, e := range events {
		env, err := l.codec.Encode(e)
		if err != nil {
			return nil, fmt.Errorf("event[%d]: %w", i, err)
		}
		envs = append(envs, env)
	}
	return envs, nil
}

func persisted[E event.Event](records []Record, events []E) []event.Persisted[E] {
	out := make([]event.Persisted[E], len(records))
	for i, rec := range records {
		out[i] = event.NewPersisted(rec.Seq, events[i])
	}
	return out
}

func (l *Log[E]) decode(records []Record) ([]event.Persisted[E], error) {
	out := make([]event.Persisted[E], 0, len(records))
	for _, rec := range records {
		e, err := l.codec.Decode(rec.Envelope)
		if err != nil {
			return nil, fmt.Errorf("decode seq %d: %w", rec.Seq, err)
		}
		out = append(out, event.NewPersisted(rec.Seq, e))
	}
	return out, nil
}
