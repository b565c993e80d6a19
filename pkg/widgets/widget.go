package widgets

import (
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Variant identifies the family of control a Widget stands for.
type Variant string

const (
	VariantInput    Variant = "input"
	VariantTextarea Variant = "textarea"
	VariantSelect   Variant = "select"
	VariantCheckbox Variant = "checkbox"
)

// Option is one entry of a select control.
type Option struct {
	Value    string
	Label    string
	Disabled bool
	Selected bool
}

// Widget describes the behaviour a field kind needs from a presentation
// layer: the value shape it produces, its placeholder and, for selects, its
// options. The set of implementations is closed to this package.
type Widget interface {
	Variant() Variant
	// InputType is the HTML input type for single-line inputs and the
	// variant name otherwise.
	InputType() string
	Coerce(model.Value) model.Value
	Placeholder(model.Field) string
	// Options returns nil for widgets without an enumeration.
	Options(model.Field) []Option

	sealed()
}

// Input is a single-line text control (text, password, email).
type Input struct {
	Type string
	// Fallback marks an Input chosen because the field kind was unknown.
	Fallback bool
}

func (Input) Variant() Variant { return VariantInput }

func (w Input) InputType() string {
	if w.Type == "" {
		return string(model.KindText)
	}
	return w.Type
}

func (Input) Coerce(v model.Value) model.Value { return model.Text(v.String()) }

func (Input) Placeholder(f model.Field) string { return textPlaceholder(f) }

func (Input) Options(model.Field) []Option { return nil }

func (Input) sealed() {}

// Textarea is a multi-line text control.
type Textarea struct{}

func (Textarea) Variant() Variant { return VariantTextarea }

func (Textarea) InputType() string { return string(VariantTextarea) }

func (Textarea) Coerce(v model.Value) model.Value { return model.Text(v.String()) }

func (Textarea) Placeholder(f model.Field) string { return textPlaceholder(f) }

func (Textarea) Options(model.Field) []Option { return nil }

func (Textarea) sealed() {}

// Select draws its value from the field's option list. The first option is
// a disabled placeholder with an empty value and is never selectable.
type Select struct{}

func (Select) Variant() Variant { return VariantSelect }

func (Select) InputType() string { return string(VariantSelect) }

func (Select) Coerce(v model.Value) model.Value { return model.Text(v.String()) }

func (Select) Placeholder(f model.Field) string { return f.Placeholder }

func (Select) Options(f model.Field) []Option {
	current := f.Value.String()
	out := make([]Option, 0, len(f.Options)+1)
	out = append(out, Option{
		Value:    "",
		Label:    f.Placeholder,
		Disabled: true,
		Selected: current == "",
	})
	for _, item := range f.Options {
		out = append(out, Option{
			Value:    item,
			Label:    item,
			Selected: current != "" && item == current,
		})
	}
	return out
}

func (Select) sealed() {}

// Checkbox toggles a boolean derived from the truthiness of the stored value.
type Checkbox struct{}

func (Checkbox) Variant() Variant { return VariantCheckbox }

func (Checkbox) InputType() string { return string(VariantCheckbox) }

func (Checkbox) Coerce(v model.Value) model.Value { return model.Bool(v.Checked()) }

func (Checkbox) Placeholder(f model.Field) string { return textPlaceholder(f) }

func (Checkbox) Options(model.Field) []Option { return nil }

func (Checkbox) sealed() {}

// Resolution is the outcome of resolving a field.
type Resolution struct {
	Field  model.Field
	Widget Widget
	// Fallback is true when the field kind was not recognised. Without a
	// registry override the widget is then a text input.
	Fallback bool
}

// Resolve maps a kind onto its widget. Unknown kinds resolve to a text
// Input flagged as Fallback.
func Resolve(kind model.Kind) Widget {
	switch kind {
	case model.KindText, model.KindPassword, model.KindEmail:
		return Input{Type: string(kind)}
	case model.KindTextarea:
		return Textarea{}
	case model.KindSelect:
		return Select{}
	case model.KindCheckbox:
		return Checkbox{}
	case "":
		return Input{Type: string(model.KindText)}
	default:
		return Input{Type: string(model.KindText), Fallback: true}
	}
}

// ResolveField resolves the widget for field's kind.
func ResolveField(field model.Field) Resolution {
	widget := Resolve(field.Kind)
	input, isInput := widget.(Input)
	return Resolution{
		Field:    field,
		Widget:   widget,
		Fallback: isInput && input.Fallback,
	}
}

// Coerce returns field's value in the shape its widget produces.
func Coerce(field model.Field) model.Value {
	return Resolve(field.Kind).Coerce(field.Value)
}

func textPlaceholder(f model.Field) string {
	if placeholder := strings.TrimSpace(f.Placeholder); placeholder != "" {
		return f.Placeholder
	}
	return f.Label
}
