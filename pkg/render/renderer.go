package render

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/form"
)

// Renderer turns a controller snapshot into a byte representation (HTML,
// plain text, etc.). Renderers never mutate controller state.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot form.Snapshot) ([]byte, error)
}
