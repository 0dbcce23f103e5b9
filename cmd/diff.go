package cmd

import (
	"github.com/spf13/cobra"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff [source]",
		Short: "Print unified diffs of the pending rewrites",
		Long: `Translate the source root in memory and print a unified diff for every
file that would change. Nothing is written.

` + sourceArgHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := currentWorkflow(cmd)
			if err != nil {
				return err
			}

			return wf.Diff(cmd.Context(), scanArgs(args))
		},
	}
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
