package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"condohub/server/config"
	"condohub/server/internal/models"
	"condohub/server/internal/unitgen"
)

func newPreviewCommand() *cobra.Command {
	var configPath, condoID string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Prints the units a property configuration would generate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadPropertyConfigFile(configPath)
			if err != nil {
				return err
			}

			units, err := unitgen.Generate(condoID, *cfg)
			if err != nil {
				return err
			}

			printUnits(cmd.OutOrStdout(), units)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "property configuration file (YAML or JSON)")
	cmd.Flags().StringVar(&condoID, "condo", "", "condo id the units belong to")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("condo")

	return cmd
}

func printUnits(w io.Writer, units []models.Unit) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("Unit", "Block", "Floor", "Type").WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for _, u := range units {
		tbl.AddRow(u.UnitNumber, u.BlockNumber, strconv.Itoa(u.FloorNumber), u.UnitType)
	}
	tbl.Print()

	fmt.Fprintf(w, "\n%d units\n", len(units))
}
