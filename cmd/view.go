package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bindport.dev/pkg/bindport/internal/domain"
	m "bindport.dev/pkg/bindport/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the report of the last run",
		Long:  `Print the per-file rewrite table saved by the last "bindport run".`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wf, err := currentWorkflow(cmd)
			if err != nil {
				return err
			}

			return wf.View(cmd.Context(), domain.ViewArgs{
				Reports: m.Path(viper.GetString(reportsConfigKey)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
