package widgets_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

func TestResolve_Kinds(t *testing.T) {
	tests := []struct {
		kind      model.Kind
		variant   widgets.Variant
		inputType string
		fallback  bool
	}{
		{kind: model.KindText, variant: widgets.VariantInput, inputType: "text"},
		{kind: model.KindPassword, variant: widgets.VariantInput, inputType: "password"},
		{kind: model.KindEmail, variant: widgets.VariantInput, inputType: "email"},
		{kind: model.KindTextarea, variant: widgets.VariantTextarea, inputType: "textarea"},
		{kind: model.KindSelect, variant: widgets.VariantSelect, inputType: "select"},
		{kind: model.KindCheckbox, variant: widgets.VariantCheckbox, inputType: "checkbox"},
		{kind: "", variant: widgets.VariantInput, inputType: "text"},
		{kind: "date", variant: widgets.VariantInput, inputType: "text", fallback: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			res := widgets.ResolveField(model.Field{Kind: tt.kind})
			if res.Widget.Variant() != tt.variant {
				t.Fatalf("variant = %q, want %q", res.Widget.Variant(), tt.variant)
			}
			if res.Widget.InputType() != tt.inputType {
				t.Fatalf("input type = %q, want %q", res.Widget.InputType(), tt.inputType)
			}
			if res.Fallback != tt.fallback {
				t.Fatalf("fallback = %v, want %v", res.Fallback, tt.fallback)
			}
		})
	}
}

func TestPlaceholder(t *testing.T) {
	field := model.Field{Label: "Full name"}
	if got := widgets.Resolve(model.KindText).Placeholder(field); got != "Full name" {
		t.Fatalf("expected label fallback, got %q", got)
	}
	field.Placeholder = "Jane Doe"
	if got := widgets.Resolve(model.KindTextarea).Placeholder(field); got != "Jane Doe" {
		t.Fatalf("expected explicit placeholder, got %q", got)
	}
	if got := widgets.Resolve(model.KindSelect).Placeholder(model.Field{Label: "Country"}); got != "" {
		t.Fatalf("select should not fall back to label, got %q", got)
	}
}

func TestSelectOptions(t *testing.T) {
	field := model.Field{
		Kind:        model.KindSelect,
		Placeholder: "Pick one",
		Options:     []string{"red", "green"},
		Value:       model.Text("green"),
	}

	got := widgets.Resolve(model.KindSelect).Options(field)
	want := []widgets.Option{
		{Value: "", Label: "Pick one", Disabled: true},
		{Value: "red", Label: "red"},
		{Value: "green", Label: "green", Selected: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	if opts := widgets.Resolve(model.KindText).Options(field); opts != nil {
		t.Fatalf("text widget should not expose options, got %v", opts)
	}
}

func TestCheckboxCoercion(t *testing.T) {
	tests := []struct {
		value model.Value
		want  bool
	}{
		{value: model.Text("on"), want: true},
		{value: model.Text(""), want: false},
		{value: model.Text("false"), want: false},
		{value: model.Text("off"), want: false},
		{value: model.Bool(true), want: true},
		{value: model.Bool(false), want: false},
		{value: model.ValueOf(nil), want: false},
	}

	for _, tt := range tests {
		got := widgets.Coerce(model.Field{Kind: model.KindCheckbox, Value: tt.value})
		if !got.IsBool() || got.Truthy() != tt.want {
			t.Fatalf("coerce %#v = %#v, want strict %v", tt.value, got, tt.want)
		}
	}

	text := widgets.Coerce(model.Field{Kind: model.KindText, Value: model.Bool(true)})
	if text.IsBool() || text.String() != "true" {
		t.Fatalf("text coercion should produce a string, got %#v", text)
	}
}
