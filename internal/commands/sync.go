package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/flexidash/flexidash/internal/abraflexi"
	"github.com/flexidash/flexidash/internal/config"
	"github.com/flexidash/flexidash/internal/secrets"
	"github.com/flexidash/flexidash/internal/storage"
	"github.com/flexidash/flexidash/internal/sync"
	"github.com/flexidash/flexidash/internal/synclog"
)

// pipeline bundles a Syncer with the resources it holds open.
type pipeline struct {
	cfg    *config.Config
	syncer *sync.Syncer
	store  *storage.Store
}

func (p *pipeline) Close() error {
	return p.store.Close()
}

func openPipeline(ctx context.Context, configPath string) (*pipeline, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := secrets.LoadDotEnv(cfg.EnvFile); err != nil {
		return nil, err
	}
	store, err := storage.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	client := abraflexi.NewClient(&http.Client{Timeout: cfg.Sync.Timeout.Std()})
	syncer := sync.New(cfg, secrets.NewEnvStore(), client, store, synclog.New(cfg.Logs.Dir), slog.Default())
	return &pipeline{cfg: cfg, syncer: syncer, store: store}, nil
}

func newSyncCommand(global *globalOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "sync [company]...",
		Short: "Fetch, aggregate and store statements now",
		Long: "Sync the named companies, or every company with an AbraFlexi endpoint when no\n" +
			"company is named or --all is given. Passwords are read from\n" +
			"FLEXIDASH_PASSWORD_<COMPANY> (a .env file is loaded when present).",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPipeline(cmd.Context(), global.configPath)
			if err != nil {
				return err
			}
			defer p.Close()

			var outcomes []sync.Outcome
			if all || len(args) == 0 {
				outcomes = p.syncer.RunAll(cmd.Context())
			} else {
				companies := make([]config.Company, 0, len(args))
				for _, id := range args {
					co, err := lookupCompany(p.cfg, id)
					if err != nil {
						return err
					}
					companies = append(companies, co)
				}
				outcomes = p.syncer.RunCompanies(cmd.Context(), companies)
			}

			if err := printOutcomes(cmd.OutOrStdout(), outcomes); err != nil {
				return err
			}
			return sync.Failed(outcomes)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "sync every configured company")
	return cmd
}

func newScheduleCommand(global *globalOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Sync every company periodically until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openPipeline(cmd.Context(), global.configPath)
			if err != nil {
				return err
			}
			defer p.Close()

			every := p.cfg.Sync.Interval.Std()
			if interval > 0 {
				every = interval
			}
			slog.Info("Scheduler started", "interval", every, "companies", len(p.cfg.Companies))

			out := cmd.OutOrStdout()
			return p.syncer.Schedule(cmd.Context(), every, func(outcomes []sync.Outcome) {
				if err := printOutcomes(out, outcomes); err != nil {
					slog.Warn("Could not print outcomes", "error", err)
				}
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "override sync.interval")
	return cmd
}

func printOutcomes(out io.Writer, outcomes []sync.Outcome) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPANY\tYEAR\tROWS\tUNBALANCED\tSTATUS")
	for _, o := range outcomes {
		status := "ok"
		if o.Err != nil {
			status = o.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", o.Company, o.Year, o.Rows, o.Imbalances, status)
	}
	return tw.Flush()
}
