package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		file       string
		valuesFile string
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate values against a form definition and print the error map",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, fields, err := a.loadForm(file)
			if err != nil {
				return err
			}
			values, err := readValues(valuesFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctrl, err := a.newController(doc, fields, discardSubmit)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(values))
			for name := range values {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if err := ctrl.Change(name, model.ValueOf(values[name])); err != nil {
					return err
				}
			}

			_, submitErr := ctrl.Submit(cmd.Context())
			var verr *form.ValidationError
			if submitErr != nil && !errors.As(submitErr, &verr) {
				return submitErr
			}

			payload, err := json.MarshalIndent(ctrl.Errors(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode errors: %w", err)
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(payload)); err != nil {
				return err
			}
			if verr != nil {
				return errInvalidForm
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "form definition (YAML or JSON)")
	cmd.Flags().StringVar(&valuesFile, "values", "", "JSON object of field values (- for stdin)")
	return cmd
}

func readValues(path string, stdin io.Reader) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return nil, nil
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return values, nil
}
