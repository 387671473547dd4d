package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/flexidash/flexidash/internal/chart"
	"github.com/flexidash/flexidash/internal/config"
	"github.com/flexidash/flexidash/internal/export"
	"github.com/flexidash/flexidash/internal/period"
	"github.com/flexidash/flexidash/internal/statements"
	"github.com/flexidash/flexidash/internal/storage"
	"github.com/flexidash/flexidash/internal/sync"
)

// loadDocument reads the stored document of a company: the latest sync, or
// one year when year is non-zero.
func loadDocument(ctx context.Context, configPath, companyID string, year int) (*config.Config, sync.Document, []byte, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, sync.Document{}, nil, err
	}
	if _, err := lookupCompany(cfg, companyID); err != nil {
		return nil, sync.Document{}, nil, err
	}

	store, err := storage.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return nil, sync.Document{}, nil, err
	}
	defer store.Close()

	docID := sync.LatestDoc
	if year != 0 {
		docID = sync.YearDoc(year)
	}
	stored, err := store.Get(ctx, companyID, docID)
	if err != nil {
		return nil, sync.Document{}, nil, err
	}
	doc, err := sync.DecodeDocument(stored.Body)
	if err != nil {
		return nil, sync.Document{}, nil, err
	}
	return cfg, doc, stored.Body, nil
}

func newReportCommand(global *globalOptions) *cobra.Command {
	var (
		year    int
		rawJSON bool
	)

	cmd := &cobra.Command{
		Use:   "report <company>",
		Short: "Print the stored statements of a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, body, err := loadDocument(cmd.Context(), global.configPath, args[0], year)
			if err != nil {
				return err
			}
			if rawJSON {
				_, err := cmd.OutOrStdout().Write(append(body, '\n'))
				return err
			}
			return printReport(cmd.OutOrStdout(), doc)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "stored year to show (default: latest sync)")
	cmd.Flags().BoolVar(&rawJSON, "json", false, "print the stored JSON document")
	return cmd
}

func printReport(out io.Writer, doc sync.Document) error {
	fmt.Fprintf(out, "%s %d (synced %s, %d accounts)\n\n", doc.Company, doc.Year, doc.LastSync.Format("2006-01-02 15:04"), doc.Rows)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MONTH\tREVENUE\tCOSTS\tPROFIT\tPROFIT YTD\tASSETS\tLIAB+EQUITY\t")
	income := doc.IncomeStatement
	for i, p := range income.Monthly {
		var ytd, snap statements.Period
		if i < len(income.Cumulative) {
			ytd = income.Cumulative[i]
		}
		if p.Month < len(doc.BalanceSheet.Monthly) {
			snap = doc.BalanceSheet.Monthly[p.Month]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			period.MonthName(p.Month),
			p.Get(statements.RevenueTotal).StringFixed(2),
			p.Get(statements.CostsTotal).StringFixed(2),
			p.Get(statements.ProfitAfterTax).StringFixed(2),
			ytd.Get(statements.ProfitAfterTax).StringFixed(2),
			snap.Get(statements.Assets).StringFixed(2),
			snap.Get(statements.LiabilitiesAndEquity).StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, im := range doc.Check() {
		fmt.Fprintf(out, "warning: %s does not balance (difference %s)\n",
			period.Format(doc.Year, im.Month), im.Difference().StringFixed(2))
	}
	return nil
}

func newExportCommand(global *globalOptions) *cobra.Command {
	var (
		dir  string
		year int
	)

	cmd := &cobra.Command{
		Use:   "export <company>",
		Short: "Write the stored statements of a company as CSV files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, doc, _, err := loadDocument(cmd.Context(), global.configPath, args[0], year)
			if err != nil {
				return err
			}
			co, _ := cfg.Company(args[0])
			table, err := sync.LoadChart(co.ChartFile)
			if err != nil {
				return err
			}
			agg := statements.New(table, statements.Options{})

			if dir == "" {
				dir = "export"
			}
			paths, err := export.WriteResult(dir, doc.Year, doc.Result,
				agg.Lines(chart.StatementIncome), agg.Lines(chart.StatementBalance))
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default: export)")
	cmd.Flags().IntVar(&year, "year", 0, "stored year to export (default: latest sync)")
	return cmd
}
