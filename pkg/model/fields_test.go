package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
)

func TestNewFields_PreservesInsertionOrder(t *testing.T) {
	fields, err := model.NewFields(
		model.Field{Name: "zeta", Kind: model.KindText},
		model.Field{Name: " alpha ", Kind: model.KindEmail},
		model.Field{Name: "mid", Kind: model.KindCheckbox, Value: model.Bool(true)},
	)
	if err != nil {
		t.Fatalf("new fields: %v", err)
	}

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, fields.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, ok := fields.Get("alpha"); !ok {
		t.Fatalf("expected trimmed name to be addressable")
	}
}

func TestNewFields_RejectsInvalidNames(t *testing.T) {
	tests := []struct {
		name   string
		fields []model.Field
		want   error
	}{
		{
			name:   "blank",
			fields: []model.Field{{Name: "  "}},
			want:   model.ErrFieldNameRequired,
		},
		{
			name:   "duplicate",
			fields: []model.Field{{Name: "email"}, {Name: "email"}},
			want:   model.ErrDuplicateField,
		},
		{
			name:   "select without options",
			fields: []model.Field{{Name: "plan", Kind: model.KindSelect}},
			want:   model.ErrOptionsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewFields(tt.fields...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestFields_NormalizeValuesToKind(t *testing.T) {
	fields, err := model.NewFields(
		model.Field{Name: "agree", Kind: model.KindCheckbox, Value: model.Text("no")},
		model.Field{Name: "subscribe", Kind: model.KindCheckbox, Value: model.Text("yes")},
		model.Field{Name: "nickname", Kind: model.KindText, Value: model.Bool(true)},
		model.Field{Name: "colour", Kind: model.Kind("color"), Value: model.Text("teal")},
	)
	if err != nil {
		t.Fatalf("new fields: %v", err)
	}

	changed, err := fields.With("subscribe", model.Text("false"))
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	changed, err = changed.With("nickname", model.Bool(false))
	if err != nil {
		t.Fatalf("with: %v", err)
	}

	tests := []struct {
		name   string
		fields model.Fields
		field  string
		want   model.Value
	}{
		{name: "initial checkbox text", fields: fields, field: "agree", want: model.Bool(false)},
		{name: "initial checkbox on", fields: fields, field: "subscribe", want: model.Bool(true)},
		{name: "initial bool on text", fields: fields, field: "nickname", want: model.Text("true")},
		{name: "unknown kind keeps text", fields: fields, field: "colour", want: model.Text("teal")},
		{name: "changed checkbox", fields: changed, field: "subscribe", want: model.Bool(false)},
		{name: "changed text", fields: changed, field: "nickname", want: model.Text("false")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fields.Value(tt.field)
			if !ok {
				t.Fatalf("missing field %q", tt.field)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("value = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFields_WithReplacesOnlyTarget(t *testing.T) {
	original := model.MustFields(
		model.Field{Name: "first", Value: model.Text("a"), Label: "First"},
		model.Field{Name: "second", Value: model.Text("b"), Label: "Second"},
	)

	updated, err := original.With("first", model.Text("changed"))
	if err != nil {
		t.Fatalf("with: %v", err)
	}

	if got, _ := original.Value("first"); got.String() != "a" {
		t.Fatalf("original mutated: %q", got.String())
	}
	first, _ := updated.Get("first")
	if first.Value.String() != "changed" || first.Label != "First" {
		t.Fatalf("unexpected updated field: %+v", first)
	}
	second, _ := updated.Get("second")
	if second.Value.String() != "b" {
		t.Fatalf("sibling field changed: %q", second.Value.String())
	}

	if _, err := original.With("missing", model.Text("x")); !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		raw   string
		want  model.Kind
		known bool
	}{
		{raw: "text", want: model.KindText, known: true},
		{raw: " Email ", want: model.KindEmail, known: true},
		{raw: "", want: model.KindText, known: true},
		{raw: "checkbox", want: model.KindCheckbox, known: true},
		{raw: "radio", want: model.KindText, known: false},
	}

	for _, tt := range tests {
		got, known := model.ParseKind(tt.raw)
		if got != tt.want || known != tt.known {
			t.Fatalf("ParseKind(%q) = %q,%v want %q,%v", tt.raw, got, known, tt.want, tt.known)
		}
	}
}
