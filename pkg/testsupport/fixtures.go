// Package testsupport holds helpers shared by package tests: fixture
// loading, golden files and a recording submit function.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/loader"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// LoadDocument reads a form definition fixture.
func LoadDocument(t *testing.T, path string) loader.Document {
	t.Helper()

	doc, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// MustFields builds the fields declared by the fixture at path.
func MustFields(t *testing.T, path string) []model.Field {
	t.Helper()

	fields, _, err := LoadDocument(t, path).Fields()
	if err != nil {
		t.Fatalf("document fields: %v", err)
	}
	return fields
}

// NewController builds a controller over the fixture at path, applying the
// document's options before opts.
func NewController(t *testing.T, path string, submit form.SubmitFunc, opts ...form.Option) *form.Controller {
	t.Helper()

	doc := LoadDocument(t, path)
	fields, _, err := doc.Fields()
	if err != nil {
		t.Fatalf("document fields: %v", err)
	}
	ctrl, err := form.New(fields, submit, append(doc.Options(), opts...)...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

// Recorder is a submit function that records every call and answers with
// the configured errors.
type Recorder struct {
	mu     sync.Mutex
	calls  []form.Values
	Errors validation.ErrorMap
	Err    error
}

// Submit satisfies form.SubmitFunc.
func (r *Recorder) Submit(_ context.Context, values form.Values) (validation.ErrorMap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, values)
	return r.Errors.Clone(), r.Err
}

// Calls returns the values received so far.
func (r *Recorder) Calls() []form.Values {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]form.Values(nil), r.calls...)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
