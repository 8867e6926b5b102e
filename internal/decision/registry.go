package decision

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gmkumar2005/disintegrate/internal/event"
)

// Factory builds a decision from JSON arguments.
type Factory[E event.Event] func(args json.RawMessage) (Runner[E], error)

// NotFoundError is returned when a registry has no decision by that name.
type NotFoundError struct {
	Name  string
	Known []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown decision %q (known: %v)", e.Name, e.Known)
}

// Registry holds the named decisions of one domain.
type Registry[E event.Event] struct {
	factories map[string]Factory[E]
}

// NewRegistry creates an empty registry.
func NewRegistry[E event.Event]() *Registry[E] {
	return &Registry[E]{factories: make(map[string]Factory[E])}
}

// Add registers f under name. Panics on a duplicate name.
func (r *Registry[E]) Add(name string, f Factory[E]) *Registry[E] {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("decision: %q registered twice", name))
	}
	r.factories[name] = f
	return r
}

// Register adds the decision type D under name. Arguments are decoded into a
// D with unknown fields rejected.
func Register[D Decision[E, S], E event.Event, S any](r *Registry[E], name string) *Registry[E] {
	return r.Add(name, func(args json.RawMessage) (Runner[E], error) {
		var d D
		if len(args) > 0 && !bytes.Equal(args, []byte("null")) {
			dec := json.NewDecoder(bytes.NewReader(args))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&d); err != nil {
				return nil, fmt.Errorf("decode %s arguments: %w", name, err)
			}
		}
		return Bind[E, S](d), nil
	})
}

// Names returns the registered decision names, sorted.
func (r *Registry[E]) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build looks up name and builds the decision from args.
func (r *Registry[E]) Build(name string, args json.RawMessage) (Runner[E], error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Known: r.Names()}
	}
	return f(args)
}
