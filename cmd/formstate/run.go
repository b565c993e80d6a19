package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
	"github.com/goliatone/go-formstate/pkg/submit"
	"github.com/goliatone/go-formstate/pkg/validation"
)

var errNotPosted = errors.New("submission was not accepted")

func newRunCmd(a *app) *cobra.Command {
	var (
		file        string
		endpoint    string
		maxAttempts int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill a form interactively and submit it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, fields, err := a.loadForm(file)
			if err != nil {
				return err
			}

			submitFn, err := a.submitter(cmd, doc.Method, firstNonEmpty(endpoint, doc.Endpoint), fields)
			if err != nil {
				return err
			}
			ctrl, err := a.newController(doc, fields, submitFn)
			if err != nil {
				return err
			}

			driver := a.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(cmd.OutOrStdout())
			}
			session, err := tui.NewSession(ctrl,
				tui.WithPromptDriver(driver),
				tui.WithMaxAttempts(maxAttempts),
				tui.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			result, err := session.Run(cmd.Context())
			if err != nil {
				return err
			}
			if !result.Posted {
				return errNotPosted
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "form definition (YAML or JSON)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "submission URL (overrides the document endpoint)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", tui.DefaultMaxAttempts, "attempts before giving up on invalid input")
	return cmd
}

// submitter posts to endpoint when one is configured and otherwise prints
// the flattened values as JSON.
func (a *app) submitter(cmd *cobra.Command, method, endpoint string, fields []model.Field) (form.SubmitFunc, error) {
	if endpoint == "" {
		return func(_ context.Context, values form.Values) (validation.ErrorMap, error) {
			payload, err := json.MarshalIndent(values, "", "  ")
			if err != nil {
				return nil, err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil, err
		}, nil
	}

	known, err := model.NewFields(fields...)
	if err != nil {
		return nil, err
	}
	httpSubmitter, err := submit.NewHTTP(endpoint,
		submit.WithMethod(method),
		submit.WithFields(known),
		submit.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	return httpSubmitter.Func(), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
