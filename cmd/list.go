package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [source]",
		Short: "Show how many rewrites each Java file would receive",
		Long: `Translate the source root in memory and print a per-file table of the
rules that fired. Nothing is written.

` + sourceArgHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := currentWorkflow(cmd)
			if err != nil {
				return err
			}

			return wf.List(cmd.Context(), scanArgs(args))
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
