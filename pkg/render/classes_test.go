package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/render"
)

func TestClassNames(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "empty", want: ""},
		{name: "blanks dropped", values: []string{"", "  ", "a"}, want: "a"},
		{name: "duplicates dropped", values: []string{"a b", "b c", "a"}, want: "a b c"},
		{name: "whitespace normalised", values: []string{" form-field \n has-error "}, want: "form-field has-error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render.ClassNames(tt.values...); got != tt.want {
				t.Fatalf("ClassNames(%q) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestThemeClasses(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			render.TokenLabelClass:        "acme-label",
			render.TokenFieldWrapperClass: "acme-field",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					render.TokenFieldWrapperClass: "acme-field acme-field--dark",
				},
			},
		},
	}

	tests := []struct {
		name      string
		selection *theme.Selection
		want      form.Classes
	}{
		{
			name: "nil selection keeps fallback",
			want: form.DefaultClasses(),
		},
		{
			name:      "manifest tokens",
			selection: &theme.Selection{Theme: "acme", Manifest: manifest},
			want:      form.Classes{Label: "acme-label", FieldWrapper: "acme-field"},
		},
		{
			name:      "variant tokens win",
			selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest},
			want:      form.Classes{Label: "acme-label", FieldWrapper: "acme-field acme-field--dark"},
		},
		{
			name:      "missing tokens keep fallback",
			selection: &theme.Selection{Theme: "plain", Manifest: &theme.Manifest{Name: "plain"}},
			want:      form.DefaultClasses(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render.ThemeClasses(tt.selection, form.DefaultClasses())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("classes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
