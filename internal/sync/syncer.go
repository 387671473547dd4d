// Package sync fetches trial balances from AbraFlexi, aggregates them into
// statements and stores the result for each configured company.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/flexidash/flexidash/internal/chart"
	"github.com/flexidash/flexidash/internal/config"
	"github.com/flexidash/flexidash/internal/model"
	"github.com/flexidash/flexidash/internal/secrets"
	"github.com/flexidash/flexidash/internal/statements"
	"github.com/flexidash/flexidash/internal/synclog"
)

// LatestDoc is the document id of the most recent sync of a company.
const LatestDoc = "latest"

// YearDoc returns the document id holding the statements of one year.
func YearDoc(year int) string {
	return fmt.Sprintf("year-%04d", year)
}

// Fetcher downloads raw trial-balance rows. *abraflexi.Client implements it.
type Fetcher interface {
	FetchRows(ctx context.Context, creds secrets.Credentials, year int) ([]model.RawAccountRow, error)
}

// DocumentStore persists processed documents. *storage.Store implements it.
type DocumentStore interface {
	Put(ctx context.Context, company, doc string, body []byte) error
}

// RunLog records run outcomes. *synclog.Log implements it.
type RunLog interface {
	Append(entries ...synclog.Entry) error
}

// Document is the stored form of one company's processed year.
type Document struct {
	Company  string    `json:"company"`
	Year     int       `json:"year"`
	LastSync time.Time `json:"lastSync"`
	Rows     int       `json:"rows"`
	statements.Result
}

// Outcome summarizes the sync of one company.
type Outcome struct {
	RunID      string
	Company    string
	Year       int
	Rows       int
	Imbalances int
	Duration   time.Duration
	Err        error
}

// Failed returns the joined errors of every failed outcome, or nil.
func Failed(outcomes []Outcome) error {
	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}

// Syncer runs the fetch, aggregate and persist pipeline.
type Syncer struct {
	cfg     *config.Config
	creds   secrets.Store
	fetcher Fetcher
	store   DocumentStore
	runLog  RunLog
	logger  *slog.Logger

	now       func() time.Time
	newRunID  func() string
	loadChart func(path string) (*chart.Table, error)
}

// New creates a Syncer over the companies and sync settings of cfg.
func New(cfg *config.Config, creds secrets.Store, fetcher Fetcher, store DocumentStore, runLog RunLog, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		cfg:       cfg,
		creds:     creds,
		fetcher:   fetcher,
		store:     store,
		runLog:    runLog,
		logger:    logger,
		now:       time.Now,
		newRunID:  uuid.NewString,
		loadChart: LoadChart,
	}
}

// LoadChart returns the chart in path, or the default chart when path is empty.
func LoadChart(path string) (*chart.Table, error) {
	if path == "" {
		return chart.DefaultTable(), nil
	}
	return chart.Load(path)
}

// Run syncs a single company.
func (s *Syncer) Run(ctx context.Context, company config.Company) Outcome {
	return s.run(ctx, s.newRunID(), company, synclog.ActionSynced, s.fetch(company))
}

// Import processes rows loaded from a file instead of AbraFlexi. source is
// recorded in the sync log.
func (s *Syncer) Import(ctx context.Context, company config.Company, year int, rows []model.RawAccountRow, source string) Outcome {
	load := func(context.Context, int) ([]model.RawAccountRow, string, error) {
		return rows, source, nil
	}
	return s.runYear(ctx, s.newRunID(), company, year, synclog.ActionImported, load)
}

// RunAll syncs every company that has an endpoint configured, at most
// sync.concurrency at a time. A failing company does not stop the others;
// its error is in its Outcome.
func (s *Syncer) RunAll(ctx context.Context) []Outcome {
	var companies []config.Company
	for _, co := range s.cfg.Companies {
		if co.Syncable() {
			companies = append(companies, co)
		} else {
			s.logger.Debug("Skipping company without endpoint", "company", co.ID)
		}
	}
	return s.RunCompanies(ctx, companies)
}

// RunCompanies syncs the given companies under one run id.
func (s *Syncer) RunCompanies(ctx context.Context, companies []config.Company) []Outcome {
	runID := s.newRunID()
	outcomes := make([]Outcome, len(companies))

	var g errgroup.Group
	g.SetLimit(max(1, s.cfg.Sync.Concurrency))
	for i, co := range companies {
		g.Go(func() error {
			outcomes[i] = s.run(ctx, runID, co, synclog.ActionSynced, s.fetch(co))
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	s.logger.Info("Sync run finished", "run_id", runID, "companies", len(outcomes), "failed", failed)
	return outcomes
}

// loadFunc produces the rows of a year and a description of where they
// came from.
type loadFunc func(ctx context.Context, year int) ([]model.RawAccountRow, string, error)

func (s *Syncer) fetch(company config.Company) loadFunc {
	return func(ctx context.Context, year int) ([]model.RawAccountRow, string, error) {
		creds, err := s.creds.Credentials(ctx, company)
		if err != nil {
			return nil, "", err
		}
		fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.Sync.Timeout.Std())
		defer cancel()
		rows, err := s.fetcher.FetchRows(fetchCtx, creds, year)
		if err != nil {
			return nil, "", fmt.Errorf("fetching rows: %w", err)
		}
		return rows, fmt.Sprintf("year %d", year), nil
	}
}

func (s *Syncer) run(ctx context.Context, runID string, company config.Company, action string, load loadFunc) Outcome {
	return s.runYear(ctx, runID, company, s.cfg.YearOr(s.now()), action, load)
}

func (s *Syncer) runYear(ctx context.Context, runID string, company config.Company, year int, action string, load loadFunc) Outcome {
	start := s.now()
	logger := s.logger.With("run_id", runID, "company", company.ID, "year", year)

	out := Outcome{RunID: runID, Company: company.ID, Year: year}
	doc, details, err := s.process(ctx, logger, company, year, load)
	out.Duration = s.now().Sub(start)

	entry := synclog.Entry{Timestamp: start, RunID: runID, Company: company.ID}
	if err != nil {
		out.Err = fmt.Errorf("syncing %s: %w", company.ID, err)
		logger.Error("Sync failed", "error", err)
		entry.Action = synclog.ActionFailed
		entry.Details = err.Error()
	} else {
		out.Rows = doc.Rows
		out.Imbalances = len(doc.Check())
		entry.Rows = doc.Rows
		entry.Action = action
		entry.Details = details
		if doc.Rows == 0 {
			entry.Action = synclog.ActionEmpty
		}
		logger.Info("Sync complete", "rows", doc.Rows, "duration", out.Duration)
	}

	if s.runLog != nil {
		if err := s.runLog.Append(entry); err != nil {
			logger.Warn("Could not append to sync log", "error", err)
		}
	}
	return out
}

func (s *Syncer) process(ctx context.Context, logger *slog.Logger, company config.Company, year int, load loadFunc) (Document, string, error) {
	table, err := s.loadChart(company.ChartFile)
	if err != nil {
		return Document{}, "", fmt.Errorf("loading chart: %w", err)
	}

	rows, details, err := load(ctx, year)
	if err != nil {
		return Document{}, "", err
	}
	if len(rows) == 0 {
		logger.Warn("No accounts returned; storing an empty result")
	}

	agg := statements.New(table, statements.Options{CurrentYearResult: s.cfg.Report.CurrentYearResult})
	doc := Document{
		Company:  company.ID,
		Year:     year,
		LastSync: s.now().UTC().Truncate(time.Second),
		Rows:     len(rows),
		Result:   agg.Aggregate(rows),
	}
	for _, im := range doc.Check() {
		logger.Warn("Balance sheet does not balance",
			"month", im.Month,
			"assets", im.Assets.String(),
			"liabilities_and_equity", im.LiabilitiesAndEquity.String())
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return Document{}, "", fmt.Errorf("encoding document: %w", err)
	}
	for _, id := range []string{LatestDoc, YearDoc(year)} {
		if err := s.store.Put(ctx, company.ID, id, body); err != nil {
			return Document{}, "", err
		}
	}
	return doc, details, nil
}

// DecodeDocument parses a stored document.
func DecodeDocument(body []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return Document{}, fmt.Errorf("decoding document: %w", err)
	}
	return doc, nil
}
