package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

const contactForm = "testdata/contact.yaml"

func execute(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	a.out = &out
	a.errOut = &errOut
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRenderCommand_HTML(t *testing.T) {
	out, _, err := execute(t, &app{}, "render", "-f", contactForm, "--submit-label", "Send")
	require.NoError(t, err)

	assert.Contains(t, out, `<label class="label text-input" for="fs-email">Email</label>`)
	assert.Contains(t, out, `<div class="field field-topic" data-field="topic" data-widget="select">`)
	assert.Contains(t, out, `data-fallback="true"`)
	assert.Contains(t, out, `<button type="submit">Send</button>`)
}

func TestRenderCommand_WritesFileAndLogsDiagnostics(t *testing.T) {
	target := filepath.Join(t.TempDir(), "form.txt")
	_, logs, err := execute(t, &app{}, "render", "-f", contactForm, "--renderer", "tui", "-o", target, "--log-format", "json", "--log-level", "info")
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Subscribe: no\n")
	assert.Contains(t, logs, `"field":"favourite"`)
	assert.Contains(t, logs, `"message":"form written"`)
}

func TestRenderCommand_Errors(t *testing.T) {
	_, _, err := execute(t, &app{}, "render")
	assert.EqualError(t, err, "--file is required")

	_, _, err = execute(t, &app{}, "render", "-f", contactForm, "--renderer", "pdf")
	assert.Error(t, err)

	_, _, err = execute(t, &app{}, "render", "-f", contactForm, "--log-format", "xml")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, _, err := execute(t, &app{}, "validate", "-f", contactForm, "--values", "testdata/invalid.json")
	require.ErrorIs(t, err, errInvalidForm)
	assert.JSONEq(t, `{"email": "Enter a valid email"}`, out)

	out, _, err = execute(t, &app{}, "validate", "-f", contactForm, "--values", "testdata/valid.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, out)

	_, _, err = execute(t, &app{}, "validate", "-f", contactForm)
	require.ErrorIs(t, err, errInvalidForm)
}

func TestRunCommand_PrintsValuesWithoutEndpoint(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{"", "teal", "ada@example.com"}, selects: []int{1}, confirms: []bool{true}}

	out, _, err := execute(t, &app{driver: driver}, "run", "-f", contactForm)
	require.NoError(t, err)

	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	require.True(t, start >= 0 && end > start, "expected JSON in output: %s", out)

	var values map[string]any
	require.NoError(t, json.Unmarshal([]byte(out[start:end+1]), &values))
	assert.Equal(t, map[string]any{
		"email":     "ada@example.com",
		"topic":     "support",
		"subscribe": true,
		"favourite": "teal",
	}, values)
	assert.Contains(t, driver.info, "✗ Email: Email is required")
}

func TestRunCommand_PostsToEndpoint(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	driver := &scriptedDriver{inputs: []string{"ada@example.com", ""}, selects: []int{0}, confirms: []bool{false}}
	_, _, err := execute(t, &app{driver: driver}, "run", "-f", contactForm, "--endpoint", server.URL)
	require.NoError(t, err)
	assert.Equal(t, "sales", received["topic"])
	assert.Equal(t, false, received["subscribe"])
}

func TestRunCommand_SuccessBodyIsPosted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"Saved","status":"ok"}`))
	}))
	defer server.Close()

	driver := &scriptedDriver{inputs: []string{"ada@example.com", ""}, selects: []int{0}, confirms: []bool{true}}
	_, _, err := execute(t, &app{driver: driver}, "run", "-f", contactForm, "--endpoint", server.URL)
	require.NoError(t, err)
	assert.Contains(t, driver.info, "Submitted.")
}

func TestRunCommand_ServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	driver := &scriptedDriver{inputs: []string{"ada@example.com", ""}, selects: []int{0}, confirms: []bool{false}}
	_, _, err := execute(t, &app{driver: driver}, "run", "-f", contactForm, "--endpoint", server.URL)
	require.ErrorIs(t, err, errNotPosted)
	assert.Contains(t, driver.info, "✗ Submission failed (503 Service Unavailable)")
}

type scriptedDriver struct {
	inputs   []string
	selects  []int
	confirms []bool
	info     []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	return value, nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	value := d.confirms[0]
	d.confirms = d.confirms[1:]
	return value, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	value := d.selects[0]
	d.selects = d.selects[1:]
	return value, nil
}

func (d *scriptedDriver) TextArea(ctx context.Context, cfg tui.TextAreaConfig) (string, error) {
	return d.Input(ctx, tui.InputConfig{Message: cfg.Message, Default: cfg.Default})
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}
