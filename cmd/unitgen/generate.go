package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"condohub/server/config"
	"condohub/server/internal/database"
	"condohub/server/internal/logging"
	"condohub/server/internal/processor"
	"condohub/server/internal/unitgen"
)

func newGenerateCommand() *cobra.Command {
	var configPath, condoID string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generates units and writes them to the database",
		Long: `Generates units from a property configuration file and writes them to the database
configured through the environment (DB_DRIVER, DB_DSN). Units that already exist are left untouched,
so running the command again is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			propertyCfg, err := config.LoadPropertyConfigFile(configPath)
			if err != nil {
				return err
			}

			units, err := unitgen.Generate(condoID, *propertyCfg)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			logger := logging.New(cfg.Log.Level, cfg.Log.Format)
			logger.SetOutput(cmd.ErrOrStderr())

			db, err := database.NewDatabase(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.RunMigrations(); err != nil {
				return err
			}

			writer := processor.NewBatchWriter(db, cfg, logger)
			res, err := writer.Write(cmd.Context(), units)
			if err != nil {
				return fmt.Errorf("failed to write units: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %d units, skipped %d existing (%d batches)\n",
				res.Created, res.Skipped, res.Batches)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "property configuration file (YAML or JSON)")
	cmd.Flags().StringVar(&condoID, "condo", "", "condo id the units belong to")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("condo")

	return cmd
}
