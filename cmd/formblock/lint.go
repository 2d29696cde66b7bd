package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formblock/pkg/renderers/html/fields"
	"github.com/goliatone/go-formblock/pkg/validation"
)

var errLintFailed = errors.New("lint failed")

func lintCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint [block ids...]",
		Short: "Check form block documents for authoring errors",
		Long: `Check every block (or only the given ids) for missing model names, unknown
field kinds, duplicate or reserved control names and invalid defaults.
Exits with status 1 when any error is found, or any warning with --strict.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			ids := args
			if len(ids) == 0 {
				ids = store.IDs()
			}
			resolver := fields.NewDefaultRegistry().Freeze()

			failed := false
			out := cmd.OutOrStdout()
			for _, id := range ids {
				block, err := a.block(store, id)
				if err != nil {
					return err
				}
				result := validation.ValidateBlock(resolver, block)
				for _, issue := range result.Issues {
					fmt.Fprintf(out, "%s: %s\n", store.Source(id), issue)
				}
				if !result.Valid || (strict && len(result.Issues) > 0) {
					failed = true
				}
			}
			if failed {
				return errLintFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&a.contentDir, "content", "", "directory of block documents (default: bundled samples)")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}
