package model

import "strings"

// Kind names the input semantics of a field.
type Kind string

const (
	KindText     Kind = "text"
	KindPassword Kind = "password"
	KindEmail    Kind = "email"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
)

// Kinds returns every kind the dispatch recognises, in declaration order.
func Kinds() []Kind {
	return []Kind{KindText, KindPassword, KindEmail, KindTextarea, KindSelect, KindCheckbox}
}

// Known reports whether k is one of the recognised kinds.
func (k Kind) Known() bool {
	switch k {
	case KindText, KindPassword, KindEmail, KindTextarea, KindSelect, KindCheckbox:
		return true
	default:
		return false
	}
}

// ParseKind normalises raw and resolves it to a Kind. Blank input resolves to
// KindText. Unknown kinds also resolve to KindText but report false so the
// caller can surface a diagnostic.
func ParseKind(raw string) (Kind, bool) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if normalized == "" {
		return KindText, true
	}
	if normalized.Known() {
		return normalized, true
	}
	return KindText, false
}

// Normalize returns v in the shape a field of kind k holds: a boolean for
// checkboxes, text for every other kind.
func (k Kind) Normalize(v Value) Value {
	if k == KindCheckbox {
		return Bool(v.Checked())
	}
	if v.IsBool() {
		return Text(v.String())
	}
	return v
}

// Input is the argument handed to every Validator.
type Input struct {
	Value Value
	Field Field
	Data  Fields
}

// Validator checks one field. A nil error means the value passed.
// Validators must not mutate Data and may be called any number of times.
type Validator func(Input) error

// Field models an individual input inside a form.
type Field struct {
	Name        string            `json:"name"`
	Kind        Kind              `json:"kind"`
	Value       Value             `json:"value"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Class       string            `json:"class,omitempty"`
	Options     []string          `json:"options,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Validators  []Validator       `json:"-"`
}

// WithValue returns a copy of f holding v.
func (f Field) WithValue(v Value) Field {
	f.Value = v
	return f
}

func (f Field) clone() Field {
	if len(f.Options) > 0 {
		f.Options = append([]string(nil), f.Options...)
	}
	if len(f.Validators) > 0 {
		f.Validators = append([]Validator(nil), f.Validators...)
	}
	if len(f.Metadata) > 0 {
		meta := make(map[string]string, len(f.Metadata))
		for key, value := range f.Metadata {
			meta[key] = value
		}
		f.Metadata = meta
	}
	return f
}
