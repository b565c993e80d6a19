package validation

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// FormErrorKey is the reserved ErrorMap key holding form-level messages. It
// never collides with a rendered field because renderers only look it up
// through ErrorMap.Form.
const FormErrorKey = "formError"

// ErrorMap maps a field name (or FormErrorKey) to a human readable message.
// A missing key or an empty message both mean "no error".
type ErrorMap map[string]string

// HasErrors reports whether at least one entry carries a non-empty message.
// A nil or empty map has no errors.
func HasErrors(errs ErrorMap) bool {
	for _, message := range errs {
		if message != "" {
			return true
		}
	}
	return false
}

// FormLevel returns an ErrorMap holding a single form-level message.
func FormLevel(message string) ErrorMap {
	return ErrorMap{FormErrorKey: message}
}

// HasErrors is the method form of the package-level HasErrors.
func (m ErrorMap) HasErrors() bool {
	return HasErrors(m)
}

// Field returns the message recorded for name, if any.
func (m ErrorMap) Field(name string) string {
	if m == nil {
		return ""
	}
	return m[name]
}

// Form returns the form-level message.
func (m ErrorMap) Form() string {
	return m.Field(FormErrorKey)
}

// Clone returns an independent copy. A nil map clones to an empty map.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for key, message := range m {
		out[key] = message
	}
	return out
}

// Keys returns the keys holding a message, ordered by the supplied field
// order first, then any remaining keys alphabetically with FormErrorKey last.
func (m ErrorMap) Keys(order []string) []string {
	if len(m) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(m))
	keys := make([]string, 0, len(m))
	for _, name := range order {
		if m[name] == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		keys = append(keys, name)
	}

	var rest []string
	for key, message := range m {
		if message == "" || key == FormErrorKey {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		rest = append(rest, key)
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	if _, ok := seen[FormErrorKey]; !ok && m[FormErrorKey] != "" {
		keys = append(keys, FormErrorKey)
	}
	return keys
}

// MapPayload folds a server error payload onto the form's field names.
// Keys may be plain names, dotted paths or JSON pointers wrapped in request
// envelopes ("/body/email", "#/data/attributes/email"). Paths that match no
// field, and the conventional form-level keys, land on FormErrorKey. Multiple
// messages for one key are trimmed, deduplicated and joined with "; ".
func MapPayload(data model.Fields, payload map[string][]string) ErrorMap {
	out := make(ErrorMap)
	if len(payload) == 0 {
		return out
	}

	names := make(map[string]struct{}, data.Len())
	for _, name := range data.Names() {
		names[name] = struct{}{}
	}

	collected := make(map[string][]string)
	rawKeys := make([]string, 0, len(payload))
	for key := range payload {
		rawKeys = append(rawKeys, key)
	}
	sort.Strings(rawKeys)

	for _, rawPath := range rawKeys {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		target, formLevel := mapErrorPath(rawPath, names)
		if formLevel {
			target = FormErrorKey
		}
		collected[target] = append(collected[target], messages...)
	}

	for key, messages := range collected {
		out[key] = strings.Join(normalizeMessages(messages), "; ")
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, names map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}
	if _, ok := names[trimmed]; ok {
		return trimmed, false
	}

	segments := parsePathSegments(trimmed)
	if len(segments) == 0 {
		return "", true
	}

	for _, variant := range [][]string{
		segments,
		dropWrapperSegments(segments),
		stripNumericSegments(dropWrapperSegments(segments)),
	} {
		if name := longestMatchingName(variant, names); name != "" {
			return name, false
		}
	}
	return "", true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":       {},
		"request":    {},
		"payload":    {},
		"data":       {},
		"attributes": {},
		"errors":     {},
	}

	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func longestMatchingName(segments []string, names map[string]struct{}) string {
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := names[candidate]; ok {
			return candidate
		}
	}
	return ""
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "formerror", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
