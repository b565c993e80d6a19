package form

import (
	"strings"

	"github.com/rs/zerolog"
)

// Default CSS classification tags handed to presentation layers.
const (
	DefaultLabelClass        = "label-hoc-form"
	DefaultFieldWrapperClass = "field-hoc-form"
)

// Classes carries the presentational tags configured on the controller. The
// controller never interprets them.
type Classes struct {
	Label        string
	FieldWrapper string
}

// DefaultClasses returns the built-in tags.
func DefaultClasses() Classes {
	return Classes{
		Label:        DefaultLabelClass,
		FieldWrapper: DefaultFieldWrapperClass,
	}
}

// Listener observes every published state change.
type Listener func(Snapshot)

// Option customises a Controller.
type Option func(*Controller)

// WithLabelClass overrides the label classification tag.
func WithLabelClass(class string) Option {
	return func(c *Controller) {
		if trimmed := strings.TrimSpace(class); trimmed != "" {
			c.classes.Label = trimmed
		}
	}
}

// WithFieldWrapperClass overrides the field wrapper classification tag.
func WithFieldWrapperClass(class string) Option {
	return func(c *Controller) {
		if trimmed := strings.TrimSpace(class); trimmed != "" {
			c.classes.FieldWrapper = trimmed
		}
	}
}

// WithClasses applies both tags; blank entries keep the defaults.
func WithClasses(classes Classes) Option {
	return func(c *Controller) {
		WithLabelClass(classes.Label)(c)
		WithFieldWrapperClass(classes.FieldWrapper)(c)
	}
}

// WithLogger sets the logger used for diagnostics and lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithListener registers a listener at construction time.
func WithListener(fn Listener) Option {
	return func(c *Controller) {
		if fn != nil {
			c.listeners = append(c.listeners, listenerEntry{id: c.nextListenerID(), fn: fn})
		}
	}
}
