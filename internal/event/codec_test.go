package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec() *Codec[testEvent] {
	c := NewCodec[testEvent]()
	Register[itemAdded](c)
	Register[itemRemoved](c)
	return c
}

func TestCodec_Types(t *testing.T) {
	assert.Equal(t, []string{"ItemAdded", "ItemRemoved"}, newTestCodec().Types())
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec()

	env, err := c.Encode(itemAdded{ItemID: "p1", CartID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "ItemAdded", env.Type)
	assert.JSONEq(t, `{"item_id":"p1","cart_id":"c1"}`, string(env.Data))

	decoded, err := c.Decode(env)
	require.NoError(t, err)
	assert.Equal(t, testEvent(itemAdded{ItemID: "p1", CartID: "c1"}), decoded)
}

func TestCodec_DecodeUnknownType(t *testing.T) {
	c := newTestCodec()

	_, err := c.Decode(Envelope{Type: "CartDeleted", Data: json.RawMessage(`{}`)})
	require.Error(t, err)

	var unknown *UnknownTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "CartDeleted", unknown.Type)
	assert.Equal(t, []string{"ItemAdded", "ItemRemoved"}, unknown.Known)
}

func TestCodec_DecodeRejectsUnknownFields(t *testing.T) {
	c := newTestCodec()

	_, err := c.Decode(Envelope{Type: "ItemAdded", Data: json.RawMessage(`{"item":"p1"}`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode ItemAdded")
}

func TestCodec_DecodeEmptyPayload(t *testing.T) {
	c := newTestCodec()

	decoded, err := c.Decode(Envelope{Type: "ItemRemoved"})
	require.NoError(t, err)
	assert.Equal(t, testEvent(itemRemoved{}), decoded)
}

func TestCodec_DecodeValue(t *testing.T) {
	c := newTestCodec()

	decoded, err := c.DecodeValue("ItemRemoved", map[string]interface{}{
		"item_id": "p2",
		"cart_id": "c9",
	})
	require.NoError(t, err)
	assert.Equal(t, testEvent(itemRemoved{ItemID: "p2", CartID: "c9"}), decoded)
}

func TestRegister_DuplicatePanics(t *testing.T) {
	c := newTestCodec()
	assert.Panics(t, func() { Register[itemAdded](c) })
}

func TestWrapAll(t *testing.T) {
	envs, err := WrapAll([]testEvent{
		itemAdded{ItemID: "p1", CartID: "c1"},
		itemRemoved{ItemID: "p1", CartID: "c1"},
	})
	require.NoError(t, err)
	require.Len(t, envs, 2)
	assert.Equal(t, "ItemAdded", envs[0].Type)
	assert.Equal(t, "ItemRemoved", envs[1].Type)
}
