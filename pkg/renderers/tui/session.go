package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

// Session drives a controller from the terminal: every field is prompted
// once, then the form is submitted. Fields failing validation, or rejected
// by the submitter, are prompted again until the form posts or the attempt
// budget runs out.
type Session struct {
	ctrl        *form.Controller
	driver      PromptDriver
	maxAttempts int
	theme       Theme
	logger      zerolog.Logger
}

// NewSession binds a session to ctrl.
func NewSession(ctrl *form.Controller, options ...Option) (*Session, error) {
	if ctrl == nil {
		return nil, ErrControllerRequired
	}
	cfg := newSettings(options)
	return &Session{
		ctrl:        ctrl,
		driver:      cfg.driver,
		maxAttempts: cfg.maxAttempts,
		theme:       cfg.theme,
		logger:      cfg.logger,
	}, nil
}

// Run prompts and submits. It returns the last submit result; a form that
// still fails validation after the last attempt returns
// ErrAttemptsExhausted wrapping the *form.ValidationError.
func (s *Session) Run(ctx context.Context) (form.Result, error) {
	pending := s.ctrl.Fields().Names()

	for attempt := 1; ; attempt++ {
		for _, name := range pending {
			if err := s.promptField(ctx, name); err != nil {
				return form.Result{}, err
			}
		}

		result, err := s.ctrl.Submit(ctx)
		var verr *form.ValidationError
		switch {
		case errors.As(err, &verr):
			if infoErr := s.reportErrors(ctx); infoErr != nil {
				return form.Result{}, infoErr
			}
			s.logger.Debug().Int("attempt", attempt).Int("errors", len(verr.Errors)).Msg("tui: validation failed")
			if attempt >= s.maxAttempts {
				return result, fmt.Errorf("%w: %w", ErrAttemptsExhausted, err)
			}
			pending = s.failingFields()
			continue
		case err != nil:
			return result, err
		}

		if result.Posted {
			return result, s.info(ctx, s.theme.InfoPrefix+"Submitted.")
		}
		if infoErr := s.reportErrors(ctx); infoErr != nil {
			return result, infoErr
		}
		pending = s.failingFields()
		if len(pending) == 0 || attempt >= s.maxAttempts {
			return result, nil
		}
	}
}

func (s *Session) promptField(ctx context.Context, name string) error {
	res, err := s.ctrl.Widget(name)
	if err != nil {
		return err
	}
	value, err := s.prompt(ctx, res, s.ctrl.Errors().Field(name))
	if err != nil {
		return err
	}
	return s.ctrl.Change(name, value)
}

func (s *Session) prompt(ctx context.Context, res widgets.Resolution, message string) (model.Value, error) {
	field := res.Field
	widget := res.Widget
	label := displayLabel(res)
	help := widget.Placeholder(field)
	if message != "" {
		help = message
	}

	switch widget.Variant() {
	case widgets.VariantCheckbox:
		checked, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: widget.Coerce(field.Value).Truthy(),
			Help:    help,
		})
		if err != nil {
			return model.Value{}, err
		}
		return model.Bool(checked), nil

	case widgets.VariantSelect:
		var choices []widgets.Option
		for _, option := range widget.Options(field) {
			if !option.Disabled {
				choices = append(choices, option)
			}
		}
		labels := make([]string, 0, len(choices))
		defaultIdx := -1
		for idx, option := range choices {
			labels = append(labels, option.Label)
			if option.Selected {
				defaultIdx = idx
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         help,
		})
		if err != nil {
			return model.Value{}, err
		}
		if idx < 0 || idx >= len(choices) {
			return model.Text(""), nil
		}
		return model.Text(choices[idx].Value), nil

	case widgets.VariantTextarea:
		text, err := s.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: field.Value.String(),
			Help:    help,
		})
		if err != nil {
			return model.Value{}, err
		}
		return model.Text(text), nil

	default:
		cfg := InputConfig{Message: label, Default: field.Value.String(), Help: help}
		var (
			text string
			err  error
		)
		if widget.InputType() == string(model.KindPassword) {
			text, err = s.driver.Password(ctx, cfg)
		} else {
			text, err = s.driver.Input(ctx, cfg)
		}
		if err != nil {
			return model.Value{}, err
		}
		return model.Text(text), nil
	}
}

func (s *Session) reportErrors(ctx context.Context) error {
	errs := s.ctrl.Errors()
	for _, key := range errs.Keys(s.ctrl.Fields().Names()) {
		line := s.theme.ErrorPrefix + errs[key]
		if res, err := s.ctrl.Widget(key); err == nil {
			line = s.theme.ErrorPrefix + displayLabel(res) + ": " + errs[key]
		}
		if err := s.info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) failingFields() []string {
	errs := s.ctrl.Errors()
	var out []string
	for _, name := range s.ctrl.Fields().Names() {
		if errs.Field(name) != "" {
			out = append(out, name)
		}
	}
	return out
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, msg)
}
