package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFieldNameRequired is returned when a field has a blank name.
	ErrFieldNameRequired = errors.New("model: field name is required")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("model: duplicate field")
	// ErrUnknownField is returned when a name does not match any field.
	ErrUnknownField = errors.New("model: unknown field")
	// ErrOptionsRequired is returned for a select field without options.
	ErrOptionsRequired = errors.New("model: select field requires options")
)

// Fields is an insertion-ordered set of fields keyed by name. The zero value
// is an empty, usable collection. Fields is treated as immutable: With
// returns a modified copy.
type Fields struct {
	order []string
	index map[string]int
	items []Field
}

// NewFields builds an ordered collection, rejecting blank or duplicate names
// and selects without options. Values are normalised to their kind.
func NewFields(fields ...Field) (Fields, error) {
	out := Fields{
		order: make([]string, 0, len(fields)),
		index: make(map[string]int, len(fields)),
		items: make([]Field, 0, len(fields)),
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return Fields{}, ErrFieldNameRequired
		}
		if _, exists := out.index[name]; exists {
			return Fields{}, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		if field.Kind == KindSelect && len(field.Options) == 0 {
			return Fields{}, fmt.Errorf("%w: %q", ErrOptionsRequired, name)
		}
		field.Name = name
		field.Value = field.Kind.Normalize(field.Value)
		out.index[name] = len(out.items)
		out.order = append(out.order, name)
		out.items = append(out.items, field.clone())
	}
	return out, nil
}

// MustFields panics when NewFields fails. Useful for fixtures.
func MustFields(fields ...Field) Fields {
	out, err := NewFields(fields...)
	if err != nil {
		panic(err)
	}
	return out
}

// Len returns the number of fields.
func (f Fields) Len() int {
	return len(f.items)
}

// Names returns the field names in insertion order.
func (f Fields) Names() []string {
	return append([]string(nil), f.order...)
}

// Get returns the field registered under name.
func (f Fields) Get(name string) (Field, bool) {
	idx, ok := f.index[name]
	if !ok {
		return Field{}, false
	}
	return f.items[idx], true
}

// Value returns the current value of the named field.
func (f Fields) Value(name string) (Value, bool) {
	field, ok := f.Get(name)
	if !ok {
		return Value{}, false
	}
	return field.Value, true
}

// All returns a copy of the fields in insertion order.
func (f Fields) All() []Field {
	out := make([]Field, len(f.items))
	for idx, field := range f.items {
		out[idx] = field.clone()
	}
	return out
}

// With returns a copy where only the named field's value is replaced. The
// value is normalised to the field's kind.
func (f Fields) With(name string, value Value) (Fields, error) {
	idx, ok := f.index[name]
	if !ok {
		return f, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	items := append([]Field(nil), f.items...)
	items[idx] = items[idx].WithValue(items[idx].Kind.Normalize(value))
	return Fields{order: f.order, index: f.index, items: items}, nil
}
