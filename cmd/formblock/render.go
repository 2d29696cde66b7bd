package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formblock"
)

func renderCmd(a *app) *cobra.Command {
	var (
		blockID string
		output  string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a form block",
		Long: `Render a form block as HTML (default) or as a plain text summary.

Without --content the bundled sample blocks are used.`,
		Example: `  formblock render --block contact-form
  formblock render --content ./content/forms --block newsletter --output newsletter.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			block, err := a.block(store, blockID)
			if err != nil {
				return err
			}

			registry, err := formblock.NewRegistry(a.htmlOptions()...)
			if err != nil {
				return err
			}
			out, err := registry.Render(cmd.Context(), format, block, formblock.RenderOptions{Theme: a.theme()})
			if err != nil {
				a.logger.Error("render failed", "block", blockID, "error", err)
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			a.logger.Info("form block written", "block", block.ElementID, "path", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&a.contentDir, "content", "", "directory of block documents (default: bundled samples)")
	cmd.Flags().StringVar(&a.templatesDir, "templates", "", "directory overriding the HTML template bundle")
	cmd.Flags().StringVar(&blockID, "block", "", "block id to render")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&format, "format", formblock.RendererHTML, "output format: html or text")
	return cmd
}
