package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formstate/pkg/model"
)

// MetadataKey is the field metadata entry naming an explicit widget variant
// ("input", "textarea", "select", "checkbox").
const MetadataKey = "widget"

// Matcher decides whether a registered widget should handle the field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	widget   Widget
	order    int
}

// Registry layers caller-registered overrides on top of the kind dispatch.
// Explicit metadata hints win, then matchers by descending priority (ties
// fall back to registration order), then Resolve. An empty registry behaves
// exactly like ResolveField.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an override. Blank names, nil matchers and nil widgets are
// ignored.
func (r *Registry) Register(name string, priority int, matcher Matcher, widget Widget) {
	if r == nil || matcher == nil || widget == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		widget:   widget,
		order:    len(r.rules),
	})
}

// Names lists registered override names in resolution order.
func (r *Registry) Names() []string {
	rules := r.sortedRules()
	out := make([]string, 0, len(rules))
	for _, entry := range rules {
		out = append(out, entry.name)
	}
	return out
}

// Resolve picks the widget for field. An unrecognised kind is reported as
// Fallback whichever path chose the widget.
func (r *Registry) Resolve(field model.Field) Resolution {
	unknown := field.Kind != "" && !field.Kind.Known()
	if widget, ok := explicitWidget(field); ok {
		return Resolution{Field: field, Widget: widget, Fallback: unknown}
	}
	for _, entry := range r.sortedRules() {
		if entry.match(field) {
			return Resolution{Field: field, Widget: entry.widget, Fallback: unknown}
		}
	}
	return ResolveField(field)
}

func (r *Registry) sortedRules() []rule {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	return rules
}

func explicitWidget(field model.Field) (Widget, bool) {
	if field.Metadata == nil {
		return nil, false
	}
	switch Variant(strings.ToLower(strings.TrimSpace(field.Metadata[MetadataKey]))) {
	case VariantTextarea:
		return Textarea{}, true
	case VariantSelect:
		return Select{}, true
	case VariantCheckbox:
		return Checkbox{}, true
	case VariantInput:
		input := Input{Type: string(field.Kind)}
		if !field.Kind.Known() || field.Kind == model.KindTextarea || field.Kind == model.KindSelect || field.Kind == model.KindCheckbox {
			input.Type = string(model.KindText)
		}
		return input, true
	default:
		return nil, false
	}
}
