package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default bindport.yaml configuration file",
		Long: `Create a bindport.yaml in the current working directory populated with the
current source, output, report, exclude and logging settings so it can be
edited manually. An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			if err := viper.SafeWriteConfigAs(targetPath); err != nil {
				slog.Error("Failed to write config file", "path", targetPath, "error", err)
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", targetPath)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
