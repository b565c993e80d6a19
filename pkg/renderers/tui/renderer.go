package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

// Renderer prints a plain-text summary of a snapshot: one line per field
// with its coerced value, failing fields followed by their message, then
// the form-level error. Password values are masked.
type Renderer struct {
	theme Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the summary renderer.
func New(options ...Option) *Renderer {
	cfg := newSettings(options)
	return &Renderer{theme: cfg.theme}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the format produced by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, snapshot form.Snapshot) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, name := range snapshot.Fields.Names() {
		res, _ := snapshot.Widget(name)
		fmt.Fprintf(&b, "%s: %s\n", displayLabel(res), displayValue(res))
		if message := snapshot.FieldError(name); message != "" {
			fmt.Fprintf(&b, "  %s%s\n", r.theme.ErrorPrefix, message)
		}
	}
	if message := snapshot.FormError(); message != "" {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, message)
	}
	return []byte(b.String()), nil
}

func displayLabel(res widgets.Resolution) string {
	if label := strings.TrimSpace(res.Field.Label); label != "" {
		return label
	}
	return res.Field.Name
}

func displayValue(res widgets.Resolution) string {
	value := res.Widget.Coerce(res.Field.Value)
	if res.Widget.InputType() == "password" && value.String() != "" {
		return strings.Repeat("*", 8)
	}
	if value.IsBool() {
		if value.Truthy() {
			return "yes"
		}
		return "no"
	}
	return value.String()
}
