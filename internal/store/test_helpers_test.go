package store

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/gmkumar2005/disintegrate/internal/event"
	"github.com/gmkumar2005/disintegrate/internal/testutil"
)

// createTestStore creates a fresh on-disk store with deterministic record IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDs("rec")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// envelope builds an envelope from a JSON literal.
func envelope(eventType, data string) event.Envelope {
	return event.Envelope{Type: eventType, Data: json.RawMessage(data)}
}

type ledgerEvent interface {
	event.Event
	isLedger()
}

type credited struct {
	Account string `json:"account"`
	Amount  int    `json:"amount"`
}

type debited struct {
	Account string `json:"account"`
	Amount  int    `json:"amount"`
}

func (credited) EventType() string { return "Credited" }
func (debited) EventType() string  { return "Debited" }
func (credited) isLedger()         {}
func (debited) isLedger()          {}

func ledgerCodec() *event.Codec[ledgerEvent] {
	c := event.NewCodec[ledgerEvent]()
	event.Register[credited](c)
	event.Register[debited](c)
	return c
}
