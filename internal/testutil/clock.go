package testutil

import "sync"

// DeterministicClock is a monotonic logical clock that hands out history
// sequence numbers.
//
// The state fold draws one number per event, so a fresh clock numbers a
// history 1..n in the order it is supplied. The clock can be reset so the
// same history can be re-folded with identical numbering.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu  sync.Mutex
	seq int64
}

// NewDeterministicClock creates a new clock starting at 0.
//
// The first call to Next() returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// StartingAfter creates a clock whose first Next() returns seq+1.
// Used when numbering continues an existing log.
func StartingAfter(seq int64) *DeterministicClock {
	return &DeterministicClock{seq: seq}
}

// Next increments and returns the next sequence number.
func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the last sequence number handed out, 0 if none.
func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock so the next call to Next() returns 1.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
