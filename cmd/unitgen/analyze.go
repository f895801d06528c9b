package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"condohub/server/internal/unitgen"
)

func newAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <unit name>...",
		Short: "Detects the naming pattern of existing unit names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, err := unitgen.DetectPattern(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Separator:   %q\n", pattern.Separator)
			fmt.Fprintf(out, "Block style: %s\n", pattern.BlockStyle)
			fmt.Fprintf(out, "Example:     %s\n", pattern.Example)
			fmt.Fprintf(out, "Matched:     %d of %d\n", pattern.Matched, pattern.Total)
			return nil
		},
	}
}
