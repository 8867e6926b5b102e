package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/gmkumar2005/disintegrate/internal/event"
)

// Record is one stored event.
type Record struct {
	Seq      int64
	ID       string
	Envelope event.Envelope
	Digest   string
}

// Read returns the events whose type is in eventTypes (all events if empty),
// ordered by seq ASC.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) Read(ctx context.Context, eventTypes []string) ([]Record, error) {
	where, args := typeFilter(eventTypes)
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, event_type, payload, digest
		FROM events
		`+where+`
		ORDER BY seq ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			rec     Record
			payload string
		)
		if err := rows.Scan(&rec.Seq, &rec.ID, &rec.Envelope.Type, &payload, &rec.Digest); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.Envelope.Data = json.RawMessage(payload)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return records, nil
}

// LastSeq returns the highest sequence number among events of eventTypes
// (any type if empty), or 0 for an empty log.
func (s *Store) LastSeq(ctx context.Context, eventTypes []string) (int64, error) {
	where, args := typeFilter(eventTypes)
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM events `+where, args...).Scan(&seq); err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	return seq.Int64, nil
}

func lastSeqTx(ctx context.Context, tx *sql.Tx, eventTypes []string) (int64, error) {
	where, args := typeFilter(eventTypes)
	var seq sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(seq) FROM events `+where, args...).Scan(&seq); err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	return seq.Int64, nil
}

// Count returns the number of stored events.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
