package commands

import (
	"github.com/spf13/cobra"

	"github.com/flexidash/flexidash/internal/chart"
)

func newChartCommand() *cobra.Command {
	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart of accounts operations",
	}
	chartCmd.AddCommand(newChartExportCommand())
	return chartCmd
}

func newChartExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file|->",
		Short: "Write the built-in chart of accounts as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := chart.DefaultTable()
			if args[0] == "-" {
				return chart.WriteEntries(cmd.OutOrStdout(), table.Entries())
			}
			return chart.Save(args[0], table)
		},
	}
}
