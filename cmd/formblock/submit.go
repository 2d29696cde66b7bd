package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/renderers/html/fields"
	"github.com/goliatone/go-formblock/pkg/renderers/tui"
	"github.com/goliatone/go-formblock/pkg/submission"
)

func submitCmd(a *app) *cobra.Command {
	var (
		blockID     string
		sets        []string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a form block to the form backend",
		Long: `Fill a form block from --set flags or terminal prompts and post it once to
the form backend. The command exits with status 1 when the submission fails.`,
		Example: `  formblock submit --endpoint https://forms.example.com --set name=Ada --set email=ada@example.com
  formblock submit --endpoint https://forms.example.com --interactive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Submit.Endpoint == "" {
				return fmt.Errorf("--endpoint (or submit.endpoint in the config file) is required")
			}
			store, err := a.store()
			if err != nil {
				return err
			}
			block, err := a.block(store, blockID)
			if err != nil {
				return err
			}
			resolver := fields.NewDefaultRegistry().Freeze()

			var form *submission.Values
			if interactive {
				collector := tui.NewCollector(
					tui.WithResolver(resolver),
					tui.WithLogger(a.logger),
					tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				)
				form, err = collector.Collect(cmd.Context(), block)
			} else {
				form, _, err = fields.NewForm(resolver, block)
			}
			if err != nil {
				return err
			}
			if err := applySets(form, sets); err != nil {
				return err
			}

			transport, err := submission.NewHTTPTransport(a.cfg.Submit.Endpoint)
			if err != nil {
				return err
			}
			controller, err := submission.NewController(transport,
				submission.WithLogger(a.logger),
				submission.WithFormName(block.ElementID),
			)
			if err != nil {
				return err
			}

			state := controller.Submit(cmd.Context(), form)
			printState(cmd, state)
			if state.ErrorMessage != "" {
				return errSubmitFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&a.contentDir, "content", "", "directory of block documents (default: bundled samples)")
	cmd.Flags().StringVar(&a.endpoint, "endpoint", "", "form backend URL")
	cmd.Flags().StringVar(&blockID, "block", "", "block id to submit")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "control value as name=value; repeat a name for multiple values")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for every field")
	return cmd
}

// applySets writes name=value pairs into form. The first value for a name
// replaces the control's current value; later ones are appended.
func applySets(form *submission.Values, sets []string) error {
	seen := make(map[string]bool, len(sets))
	for _, raw := range sets {
		name, value, ok := strings.Cut(raw, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid --set %q, expected name=value", raw)
		}
		var err error
		if seen[name] {
			err = form.Add(name, value)
		} else {
			err = form.Set(name, value)
		}
		if err != nil {
			return fmt.Errorf("--set %s: %w", name, err)
		}
		seen[name] = true
	}
	return nil
}

func printState(cmd *cobra.Command, state submission.State) {
	msgs := render.DefaultMessages()
	out := cmd.OutOrStdout()
	if state.Submitted {
		fmt.Fprintln(out, msgs.Submitted)
	}
	if state.ErrorMessage != "" {
		fmt.Fprintln(out, state.ErrorMessage)
	}
}
