package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/flexidash/flexidash/internal/chart"
	"github.com/flexidash/flexidash/internal/sync"
)

func newClassifyCommand() *cobra.Command {
	var chartFile string

	cmd := &cobra.Command{
		Use:   "classify <account>...",
		Short: "Show how account codes are classified",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := sync.LoadChart(chartFile)
			if err != nil {
				return err
			}
			return runClassify(cmd.OutOrStdout(), table, args)
		},
	}

	cmd.Flags().StringVar(&chartFile, "chart", "", "chart CSV (default: built-in chart)")
	return cmd
}

func runClassify(out io.Writer, table *chart.Table, codes []string) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT\tNATURE\tCATEGORY\tNAME")
	for _, code := range codes {
		c, ok := table.Classify(code)
		if !ok {
			fmt.Fprintf(tw, "%s\tunclassified\t-\t-\n", code)
			continue
		}
		category := c.Category
		if c.IsDual() {
			category = c.AssetCategory + " | " + c.LiabilityCategory
		}
		if category == "" {
			category = "-"
		}
		name := c.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", code, c.Nature, category, name)
	}
	return tw.Flush()
}
