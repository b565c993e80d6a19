package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/loader"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// errInvalidForm reports a failed validation; the error map was already
// printed so main exits without another message.
var errInvalidForm = errors.New("form is invalid")

type app struct {
	out    io.Writer
	errOut io.Writer
	// driver replaces the survey prompt driver, for tests.
	driver tui.PromptDriver

	logLevel  string
	logFormat string
	logger    zerolog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "formstate",
		Short:         "Render, validate and fill declarative forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(a.errOut, a.logLevel, a.logFormat)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "console", "log format (console, json)")

	root.AddCommand(newRenderCmd(a), newValidateCmd(a), newRunCmd(a))
	return root
}

func newLogger(out io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
	case "", "console":
		writer := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		return zerolog.New(writer).Level(lvl).With().Timestamp().Logger(), nil
	default:
		return zerolog.Nop(), fmt.Errorf("invalid --log-format %q", format)
	}
}

// loadForm reads the document at path and builds its fields, logging
// loader diagnostics as warnings.
func (a *app) loadForm(path string) (loader.Document, []model.Field, error) {
	if strings.TrimSpace(path) == "" {
		return loader.Document{}, nil, errors.New("--file is required")
	}
	doc, err := loader.LoadFile(path)
	if err != nil {
		return loader.Document{}, nil, err
	}
	fields, diagnostics, err := doc.Fields()
	if err != nil {
		return loader.Document{}, nil, err
	}
	for _, diag := range diagnostics {
		a.logger.Warn().Str("file", path).Str("field", diag.Field).Msg(diag.Message)
	}
	return doc, fields, nil
}

func (a *app) newController(doc loader.Document, fields []model.Field, submit form.SubmitFunc) (*form.Controller, error) {
	opts := append(doc.Options(), form.WithLogger(a.logger))
	return form.New(fields, submit, opts...)
}

// discardSubmit accepts every valid form without sending it anywhere.
func discardSubmit(context.Context, form.Values) (validation.ErrorMap, error) {
	return nil, nil
}
