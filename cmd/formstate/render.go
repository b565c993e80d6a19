package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		file        string
		output      string
		format      string
		submitLabel string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a form definition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, fields, err := a.loadForm(file)
			if err != nil {
				return err
			}
			ctrl, err := a.newController(doc, fields, discardSubmit)
			if err != nil {
				return err
			}

			registry, err := formstate.NewRendererRegistry(
				html.WithAction(doc.Endpoint, doc.Method),
				html.WithSubmitLabel(submitLabel),
				html.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			renderer, err := registry.Get(format)
			if err != nil {
				return err
			}
			out, err := renderer.Render(cmd.Context(), ctrl.Snapshot())
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return err
			}
			a.logger.Info().Str("output", output).Str("renderer", renderer.Name()).Msg("form written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "form definition (YAML or JSON)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&format, "renderer", "html", "renderer to use (html, tui)")
	cmd.Flags().StringVar(&submitLabel, "submit-label", "", "submit button text")
	return cmd
}
