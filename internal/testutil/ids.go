package testutil

import "fmt"

// SequentialIDs generates predictable record IDs for tests.
//
// IDs have the form "<prefix>-<n>" with n counting from 1, so a store
// written by the same test always carries the same IDs and golden output
// stays byte-identical.
//
// Thread-safety: safe for concurrent use; numbering is backed by a
// DeterministicClock.
type SequentialIDs struct {
	prefix string
	clock  *DeterministicClock
}

// NewSequentialIDs creates a generator. An empty prefix defaults to "test-id".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "test-id"
	}
	return &SequentialIDs{prefix: prefix, clock: NewDeterministicClock()}
}

// Generate returns the next ID.
func (g *SequentialIDs) Generate() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.clock.Next())
}
