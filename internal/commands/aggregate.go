package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/flexidash/flexidash/internal/importer"
	"github.com/flexidash/flexidash/internal/model"
	"github.com/flexidash/flexidash/internal/statements"
	"github.com/flexidash/flexidash/internal/sync"
)

type aggregateOptions struct {
	format            string
	chartFile         string
	check             bool
	currentYearResult bool
}

func newAggregateCommand() *cobra.Command {
	var opts aggregateOptions

	cmd := &cobra.Command{
		Use:   "aggregate <file|->",
		Short: "Build statements from a saved stav-uctu export (JSON or CSV)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readRows(cmd.InOrStdin(), args[0], opts.format)
			if err != nil {
				return err
			}
			return runAggregate(cmd.OutOrStdout(), cmd.ErrOrStderr(), rows, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "input format, json or csv (default: from the file extension, json for stdin)")
	cmd.Flags().StringVar(&opts.chartFile, "chart", "", "chart CSV (default: built-in chart)")
	cmd.Flags().BoolVar(&opts.check, "check", false, "fail when a balance sheet snapshot does not balance")
	cmd.Flags().BoolVar(&opts.currentYearResult, "current-year-result", false, "book the unclosed result into equity")
	return cmd
}

// readRows parses path ("-" for stdin) with the named format, or the format
// matching the file extension.
func readRows(stdin io.Reader, path, format string) ([]model.RawAccountRow, error) {
	registry := importer.DefaultRegistry()
	if format == "" && path != "-" {
		return registry.ParseFile(path)
	}
	if format == "" {
		format = "json"
	}
	p := registry.Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown format %q", format)
	}

	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}
	return p.Parse(in)
}

func runAggregate(out, errOut io.Writer, rows []model.RawAccountRow, opts aggregateOptions) error {
	table, err := sync.LoadChart(opts.chartFile)
	if err != nil {
		return err
	}

	res := statements.New(table, statements.Options{CurrentYearResult: opts.currentYearResult}).Aggregate(rows)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if !opts.check {
		return nil
	}
	imbalances := res.Check()
	for _, im := range imbalances {
		fmt.Fprintf(errOut, "month %d: assets %s, liabilities and equity %s, difference %s\n",
			im.Month, im.Assets.StringFixed(2), im.LiabilitiesAndEquity.StringFixed(2), im.Difference().StringFixed(2))
	}
	if len(imbalances) > 0 {
		return fmt.Errorf("%d unbalanced balance sheet snapshots", len(imbalances))
	}
	return nil
}
