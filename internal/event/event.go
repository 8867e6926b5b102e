package event

// Event is an immutable domain fact.
//
// Implementations are plain value types: copying duplicates them and
// structural equality compares them. EventType names the variant and is used
// for sub-state interest, codec lookup and event log filtering.
type Event interface {
	EventType() string
}

// Persisted is an event paired with its sequence number in a history.
type Persisted[E Event] struct {
	seq   int64
	event E
}

// NewPersisted wraps e with sequence number seq.
func NewPersisted[E Event](seq int64, e E) Persisted[E] {
	return Persisted[E]{seq: seq, event: e}
}

// Seq returns the sequence number.
func (p Persisted[E]) Seq() int64 {
	return p.seq
}

// Event returns the wrapped event.
func (p Persisted[E]) Event() E {
	return p.event
}

// EventType returns the variant name of the wrapped event.
func (p Persisted[E]) EventType() string {
	return p.event.EventType()
}

// Number assigns sequence numbers 1..n to history in order.
func Number[E Event](history []E) []Persisted[E] {
	out := make([]Persisted[E], len(history))
	for i, e := range history {
		out[i] = NewPersisted(int64(i+1), e)
	}
	return out
}

// Unwrap returns the events of a persisted history in order.
func Unwrap[E Event](history []Persisted[E]) []E {
	out := make([]E, len(history))
	for i, p := range history {
		out[i] = p.event
	}
	return out
}
