package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/form"
)

// Theme tokens consulted by ThemeClasses.
const (
	TokenLabelClass        = "form.labelClass"
	TokenFieldWrapperClass = "form.fieldWrapperClass"
)

// ClassNames joins class lists, dropping blanks and repeated classes while
// keeping first-seen order.
func ClassNames(values ...string) string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, class := range strings.Fields(value) {
			if _, ok := seen[class]; ok {
				continue
			}
			seen[class] = struct{}{}
			out = append(out, class)
		}
	}
	return strings.Join(out, " ")
}

// ThemeClasses resolves classification tags from a theme selection. Tokens of
// the selected variant win over manifest tokens; missing tokens keep the
// fallback value.
func ThemeClasses(selection *theme.Selection, fallback form.Classes) form.Classes {
	out := fallback
	if selection == nil || selection.Manifest == nil {
		return out
	}
	if label := themeToken(selection, TokenLabelClass); label != "" {
		out.Label = label
	}
	if wrapper := themeToken(selection, TokenFieldWrapperClass); wrapper != "" {
		out.FieldWrapper = wrapper
	}
	return out
}

func themeToken(selection *theme.Selection, key string) string {
	manifest := selection.Manifest
	if variant, ok := manifest.Variants[selection.Variant]; ok && selection.Variant != "" {
		if value := strings.TrimSpace(variant.Tokens[key]); value != "" {
			return value
		}
	}
	return strings.TrimSpace(manifest.Tokens[key])
}
