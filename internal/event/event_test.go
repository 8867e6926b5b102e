package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type itemAdded struct {
	ItemID string `json:"item_id"`
	CartID string `json:"cart_id"`
}

func (itemAdded) EventType() string { return "ItemAdded" }

type itemRemoved struct {
	ItemID string `json:"item_id"`
	CartID string `json:"cart_id"`
}

func (itemRemoved) EventType() string { return "ItemRemoved" }

type testEvent interface {
	Event
	isTestEvent()
}

func (itemAdded) isTestEvent()   {}
func (itemRemoved) isTestEvent() {}

func TestNewPersisted(t *testing.T) {
	p := NewPersisted[testEvent](7, itemAdded{ItemID: "p1", CartID: "c1"})

	assert.Equal(t, int64(7), p.Seq())
	assert.Equal(t, testEvent(itemAdded{ItemID: "p1", CartID: "c1"}), p.Event())
	assert.Equal(t, "ItemAdded", p.EventType())
}

func TestNewPersisted_NoValidation(t *testing.T) {
	// Sequence numbers are the caller's contract.
	p := NewPersisted[testEvent](-3, itemRemoved{})
	assert.Equal(t, int64(-3), p.Seq())
}

func TestNumber_AssignsOneBasedPositions(t *testing.T) {
	history := []testEvent{
		itemAdded{ItemID: "p1", CartID: "c1"},
		itemRemoved{ItemID: "p1", CartID: "c1"},
		itemAdded{ItemID: "p2", CartID: "c1"},
	}

	numbered := Number(history)

	assert.Len(t, numbered, 3)
	for i, p := range numbered {
		assert.Equal(t, int64(i+1), p.Seq())
		assert.Equal(t, history[i], p.Event())
	}
	assert.Equal(t, history, Unwrap(numbered))
}

func TestNumber_Empty(t *testing.T) {
	assert.Empty(t, Number[testEvent](nil))
	assert.Empty(t, Unwrap[testEvent](nil))
}
