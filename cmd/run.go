package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bindport.dev/pkg/bindport/internal/domain"
	m "bindport.dev/pkg/bindport/internal/model"
)

var runOutputFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [source]",
		Short: "Port every Java file under the source root",
		Long: `Translate every .java file under the source root and write the result to
the same relative path under the output root. Other files are skipped.
A report of the run is kept for "bindport view".

` + sourceArgHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := currentWorkflow(cmd)
			if err != nil {
				return err
			}

			return wf.Run(cmd.Context(), domain.RunArgs{
				ScanArgs: scanArgs(args),
				Output:   m.Path(viper.GetString(outputConfigKey)),
				Reports:  m.Path(viper.GetString(reportsConfigKey)),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&runOutputFlag, outputFlagName, "o", defaultOutputDir, "output root for ported files")
	bindFlagToConfig(cmd.Flags().Lookup(outputFlagName), outputConfigKey)
}
