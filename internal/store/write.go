package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gmkumar2005/disintegrate/internal/decision"
	"github.com/gmkumar2005/disintegrate/internal/event"
)

// ConflictError reports events of the caller's interest set appended after
// the sequence number it read. It matches decision.ErrConcurrentModification
// under errors.Is.
type ConflictError struct {
	LastSeq int64
	Current int64
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent modification: read up to seq %d, log has relevant seq %d", e.LastSeq, e.Current)
}

// Unwrap lets errors.Is match decision.ErrConcurrentModification.
func (e *ConflictError) Unwrap() error {
	return decision.ErrConcurrentModification
}

// Append writes envelopes at the end of the log, in order, and returns the
// stored records with their assigned sequence numbers.
//
// Payloads are stored as canonical JSON so digests and replays are stable.
func (s *Store) Append(ctx context.Context, envs []event.Envelope) ([]Record, error) {
	return s.appendTx(ctx, func(*sql.Tx) error { return nil }, envs)
}

// AppendAfter appends envelopes only if no event whose type is in
// eventTypes (any type if empty) has a sequence number above lastSeq.
// The check and the insert share one transaction.
func (s *Store) AppendAfter(ctx context.Context, lastSeq int64, eventTypes []string, envs []event.Envelope) ([]Record, error) {
	check := func(tx *sql.Tx) error {
		current, err := lastSeqTx(ctx, tx, eventTypes)
		if err != nil {
			return err
		}
		if current > lastSeq {
			return &ConflictError{LastSeq: lastSeq, Current: current}
		}
		return nil
	}
	return s.appendTx(ctx, check, envs)
}

func (s *Store) appendTx(ctx context.Context, check func(*sql.Tx) error, envs []event.Envelope) ([]Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("append: begin: %w", err)
	}
	defer tx.Rollback()

	if err := check(tx); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(envs))
	for i, env := range envs {
		rec, err := s.insert(ctx, tx, env)
		if err != nil {
			return nil, fmt.Errorf("append event[%d]: %w", i, err)
		}
		records = append(records, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("append: commit: %w", err)
	}
	return records, nil
}

func (s *Store) insert(ctx context.Context, tx *sql.Tx, env event.Envelope) (Record, error) {
	if env.Type == "" {
		return Record{}, fmt.Errorf("empty event type")
	}

	var payload any
	if len(env.Data) > 0 {
		payload = env.Data
	}
	canonical, err := event.MarshalCanonical(payload)
	if err != nil {
		return Record{}, fmt.Errorf("canonicalize %s: %w", env.Type, err)
	}

	digest, err := event.EnvelopeDigest(env)
	if err != nil {
		return Record{}, err
	}

	id := s.ids.Generate()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO events (id, event_type, payload, digest)
		VALUES (?, ?, ?, ?)
	`, id, env.Type, string(canonical), digest)
	if err != nil {
		return Record{}, fmt.Errorf("insert %s: %w", env.Type, err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("insert %s: seq: %w", env.Type, err)
	}

	return Record{
		Seq:      seq,
		ID:       id,
		Envelope: event.Envelope{Type: env.Type, Data: canonical},
		Digest:   digest,
	}, nil
}

// typeFilter builds the WHERE clause restricting event_type to types.
// An empty set matches every type.
func typeFilter(types []string) (string, []any) {
	if len(types) == 0 {
		return "", nil
	}
	placeholders := make([]string, len(types))
	args := make([]any, len(types))
	for i, t := range types {
		placeholders[i] = "?"
		args[i] = t
	}
	return "WHERE event_type IN (" + strings.Join(placeholders, ", ") + ")", args
}
