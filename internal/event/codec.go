package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Envelope is the serialized form of an event: its variant name and its
// JSON payload.
type Envelope struct {
	Type string          `json:"type" yaml:"type"`
	Data json.RawMessage `json:"data" yaml:"data"`
}

// UnknownTypeError is returned when a codec has no decoder for a variant.
type UnknownTypeError struct {
	Type  string
	Known []string
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown event type %q (known: %v)", e.Type, e.Known)
}

// Codec maps variant names to decoders producing values of the event type E.
//
// E is usually a domain interface (e.g. cart.Event) implemented by one struct
// per variant. Register each variant once; decoding rejects unknown JSON
// fields so typos in fixtures fail loudly.
type Codec[E Event] struct {
	decoders map[string]func([]byte) (E, error)
}

// NewCodec creates an empty codec.
func NewCodec[E Event]() *Codec[E] {
	return &Codec[E]{decoders: make(map[string]func([]byte) (E, error))}
}

// Register adds the variant T to the codec under T's EventType.
//
// Panics if T does not implement E or the variant name is already taken;
// both are programming errors in the domain's codec setup.
func Register[T Event, E Event](c *Codec[E]) *Codec[E] {
	var zero T
	name := zero.EventType()
	if _, ok := any(zero).(E); !ok {
		panic(fmt.Sprintf("event: %T does not implement the codec's event type", zero))
	}
	if _, exists := c.decoders[name]; exists {
		panic(fmt.Sprintf("event: variant %q registered twice", name))
	}
	c.decoders[name] = func(data []byte) (E, error) {
		var v T
		if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&v); err != nil {
				var none E
				return none, fmt.Errorf("decode %s: %w", name, err)
			}
		}
		return any(v).(E), nil
	}
	return c
}

// Types returns the registered variant names, sorted.
func (c *Codec[E]) Types() []string {
	names := make([]string, 0, len(c.decoders))
	for name := range c.decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encode serializes an event into an envelope.
func (c *Codec[E]) Encode(e E) (Envelope, error) {
	return Wrap(e)
}

// Decode deserializes an envelope into an event.
func (c *Codec[E]) Decode(env Envelope) (E, error) {
	decode, ok := c.decoders[env.Type]
	if !ok {
		var none E
		return none, &UnknownTypeError{Type: env.Type, Known: c.Types()}
	}
	return decode(env.Data)
}

// DecodeValue decodes an event from a generic value, such as a map read
// from YAML.
func (c *Codec[E]) DecodeValue(eventType string, data any) (E, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		var none E
		return none, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return c.Decode(Envelope{Type: eventType, Data: raw})
}

// Wrap serializes any event into an envelope without a codec.
func Wrap[E Event](e E) (Envelope, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s: %w", e.EventType(), err)
	}
	return Envelope{Type: e.EventType(), Data: data}, nil
}

// WrapAll serializes events in order.
func WrapAll[E Event](events []E) ([]Envelope, error) {
	out := make([]Envelope, 0, len(events))
	for i, e := range events {
		env, err := Wrap(e)
		if err != nil {
			return nil, fmt.Errorf("event[%d]: %w", i, err)
		}
		out = append(out, env)
	}
	return out, nil
}
