// Package formstate is the top-level entry point: it loads a declarative
// form document, builds a controller over it and renders controller
// snapshots without callers wiring each package by hand.
package formstate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/loader"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

// ErrControllerRequired is returned by GenerateHTML when given a nil controller.
var ErrControllerRequired = errors.New("formstate: controller is required")

// Document aliases loader.Document for callers that only import the root
// package.
type Document = loader.Document

// Diagnostic aliases loader.Diagnostic.
type Diagnostic = loader.Diagnostic

// Load reads the document at path and builds a controller over its fields.
// Document level classes are applied before options so callers can override
// them.
func Load(path string, submit form.SubmitFunc, options ...form.Option) (*form.Controller, []Diagnostic, error) {
	doc, err := loader.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return FromDocument(doc, submit, options...)
}

// LoadFS is Load reading from fsys.
func LoadFS(fsys fs.FS, path string, submit form.SubmitFunc, options ...form.Option) (*form.Controller, []Diagnostic, error) {
	doc, err := loader.LoadFS(fsys, path)
	if err != nil {
		return nil, nil, err
	}
	return FromDocument(doc, submit, options...)
}

// FromDocument builds a controller over an already parsed document.
func FromDocument(doc Document, submit form.SubmitFunc, options ...form.Option) (*form.Controller, []Diagnostic, error) {
	fields, diagnostics, err := doc.Fields()
	if err != nil {
		return nil, diagnostics, err
	}
	ctrl, err := form.New(fields, submit, append(doc.Options(), options...)...)
	if err != nil {
		return nil, diagnostics, fmt.Errorf("formstate: %w", err)
	}
	return ctrl, diagnostics, nil
}

// NewRendererRegistry returns a registry holding the built-in html and tui
// renderers.
func NewRendererRegistry(htmlOptions ...html.Option) (*render.Registry, error) {
	htmlRenderer, err := html.New(htmlOptions...)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(tui.New()); err != nil {
		return nil, err
	}
	return registry, nil
}

// GenerateHTML renders the controller's current snapshot as an HTML form.
func GenerateHTML(ctx context.Context, ctrl *form.Controller, options ...html.Option) ([]byte, error) {
	if ctrl == nil {
		return nil, ErrControllerRequired
	}
	renderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, ctrl.Snapshot())
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy
// or layer them without importing the renderer package.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
