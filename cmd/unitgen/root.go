package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "unitgen",
		Short: "Generates and inspects condominium unit inventories.",
		Long: `unitgen expands a property configuration (blocks, floors per block, units per floor
and a naming scheme) into its unit inventory, prints it, or writes it to the configured database.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newPreviewCommand(), newGenerateCommand(), newAnalyzeCommand())
	return rootCmd
}
