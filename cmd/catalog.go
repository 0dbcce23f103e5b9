package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// catalogCmd represents the catalog command.
var catalogCmd = newCatalogCmd()

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the effective rule catalog",
		Long: `Print the rule catalog in use as YAML. Without --catalog this is the
built-in catalog, which makes a good starting point for a custom one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog(viper.GetString(catalogConfigKey))
			if err != nil {
				return err
			}

			data, err := catalog.Encode()
			if err != nil {
				return fmt.Errorf("failed to encode catalog: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
