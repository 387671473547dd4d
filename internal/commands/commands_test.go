package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexidash/flexidash/internal/chart"
	"github.com/flexidash/flexidash/internal/commands"
	"github.com/flexidash/flexidash/internal/config"
	"github.com/flexidash/flexidash/internal/export"
	"github.com/flexidash/flexidash/internal/synclog"
)

func runFlexidash(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// balancedDump is a stav-uctu response whose balance sheet balances in every
// snapshot: bank 1000 against share capital 1000.
func balancedDump() string {
	bank := map[string]any{"ucet": "code:221000", "mena": "code:EUR", "pocatek": "1000"}
	capital := map[string]any{"ucet": "code:411000", "mena": "code:EUR", "pocatek": "-1000"}
	for m := 1; m <= 12; m++ {
		bank[fmt.Sprintf("stav%02d", m)] = "1000"
		capital[fmt.Sprintf("stav%02d", m)] = "-1000"
	}
	data, err := json.Marshal(map[string]any{
		"winstrom": map[string]any{"stav-uctu": []any{bank, capital}},
	})
	if err != nil {
		panic(err)
	}
	return string(data)
}

func TestInit_CreatesProject(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runFlexidash(t, "init", dir, "--company", "acme", "--url", "https://x/c/acme", "--user", "api")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized flexidash project")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	require.Len(t, cfg.Companies, 1)
	assert.Equal(t, "acme", cfg.Companies[0].ID)
	assert.Equal(t, "acme", cfg.Companies[0].Name)
	assert.Equal(t, commands.ChartFileName, cfg.Companies[0].ChartFile)

	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	table, err := chart.Load(filepath.Join(dir, commands.ChartFileName))
	require.NoError(t, err)
	assert.Equal(t, chart.DefaultTable().Len(), table.Len())

	env, err := os.ReadFile(filepath.Join(dir, ".env.example"))
	require.NoError(t, err)
	assert.Equal(t, "FLEXIDASH_PASSWORD_ACME=\n", string(env))
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runFlexidash(t, "init", dir)
	require.NoError(t, err)

	_, _, err = runFlexidash(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runFlexidash(t, "init", dir, "--force")
	require.NoError(t, err)
}

func TestClassify(t *testing.T) {
	out, _, err := runFlexidash(t, "classify", "code:221000", "601", "999999")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "dual_sign")
	assert.Contains(t, lines[1], "financial_assets_bank | liabilities_short_term_loans")
	assert.Contains(t, lines[2], "revenue_sales")
	assert.Contains(t, lines[3], "unclassified")
}

func TestAggregate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stav-uctu.json")
	require.NoError(t, os.WriteFile(path, []byte(balancedDump()), 0o644))

	out, _, err := runFlexidash(t, "aggregate", path, "--check")
	require.NoError(t, err)

	var doc struct {
		IncomeStatement struct {
			Monthly []map[string]float64 `json:"monthly"`
		} `json:"incomeStatement"`
		BalanceSheet struct {
			Monthly []map[string]float64 `json:"monthly"`
		} `json:"balanceSheet"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.IncomeStatement.Monthly, 12)
	require.Len(t, doc.BalanceSheet.Monthly, 13)
	assert.InDelta(t, 1000, doc.BalanceSheet.Monthly[0]["assets"], 0.001)
	assert.InDelta(t, 1000, doc.BalanceSheet.Monthly[12]["liabilities_and_equity"], 0.001)
}

func TestAggregate_CheckFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stav-uctu.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"ucet":"221000","stav01":"50"}]`), 0o644))

	_, errOut, err := runFlexidash(t, "aggregate", path, "--check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 unbalanced")
	assert.Contains(t, errOut, "month 1: assets 50.00")
}

func TestAggregate_NotJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.json")
	require.NoError(t, os.WriteFile(path, []byte("<html>"), 0o644))

	_, _, err := runFlexidash(t, "aggregate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not JSON")
}

func TestChartExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.csv")
	_, _, err := runFlexidash(t, "chart", "export", path)
	require.NoError(t, err)

	table, err := chart.Load(path)
	require.NoError(t, err)
	assert.Equal(t, chart.DefaultTable().Len(), table.Len())

	out, _, err := runFlexidash(t, "chart", "export", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "prefix,name,nature"))
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := runFlexidash(t, "--log-level", "loud", "classify", "221")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

// project initializes a config pointing at an AbraFlexi test server.
func project(t *testing.T, serverURL string) string {
	t.Helper()
	dir := t.TempDir()
	_, _, err := runFlexidash(t, "init", dir, "--company", "acme", "--url", serverURL+"/c/acme", "--user", "api")
	require.NoError(t, err)

	path := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	cfg.Sync.Year = 2025
	cfg.Companies = append(cfg.Companies, config.Company{ID: "draft", Name: "No endpoint yet"})
	require.NoError(t, config.Save(path, cfg))
	return path
}

func abraflexiServer(t *testing.T) *httptest.Server {
	t.Helper()
	body := balancedDump()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pass, _ := r.BasicAuth(); pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(r.URL.Path, "/c/acme/stav-uctu/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSyncReportExport(t *testing.T) {
	srv := abraflexiServer(t)
	cfgPath := project(t, srv.URL)
	dir := filepath.Dir(cfgPath)
	t.Setenv("FLEXIDASH_PASSWORD_ACME", "s3cret")

	out, _, err := runFlexidash(t, "sync", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "acme")
	assert.Contains(t, out, "ok")
	assert.NotContains(t, out, "draft")

	entries, err := synclog.New(filepath.Join(dir, "logs")).Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, synclog.ActionSynced, entries[0].Action)
	assert.Equal(t, 2, entries[0].Rows)

	out, _, err = runFlexidash(t, "report", "acme", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "acme 2025")
	assert.Contains(t, out, "Máj")
	assert.NotContains(t, out, "does not balance")

	out, _, err = runFlexidash(t, "report", "acme", "--config", cfgPath, "--year", "2025", "--json")
	require.NoError(t, err)
	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &stored))
	assert.Equal(t, "acme", stored["company"])
	assert.Contains(t, stored, "lastSync")
	assert.Contains(t, stored, "incomeStatement")

	exportDir := filepath.Join(dir, "out")
	out, _, err = runFlexidash(t, "export", "acme", "--config", cfgPath, "--dir", exportDir)
	require.NoError(t, err)
	assert.Contains(t, out, export.BalanceFile)

	f, err := os.Open(filepath.Join(exportDir, export.BalanceFile))
	require.NoError(t, err)
	defer f.Close()
	series, err := export.ReadSeries(f)
	require.NoError(t, err)
	assert.Equal(t, 2025, series.Year)
	assert.Len(t, series.Periods, 13)
}

func TestSync_AuthFailure(t *testing.T) {
	srv := abraflexiServer(t)
	cfgPath := project(t, srv.URL)
	t.Setenv("FLEXIDASH_PASSWORD_ACME", "wrong")

	out, _, err := runFlexidash(t, "sync", "acme", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, out, "authentication failed")

	_, _, err = runFlexidash(t, "report", "acme", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSync_UnknownCompany(t *testing.T) {
	srv := abraflexiServer(t)
	cfgPath := project(t, srv.URL)

	_, _, err := runFlexidash(t, "sync", "nobody", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown company "nobody"`)
}

func TestSync_MissingPassword(t *testing.T) {
	srv := abraflexiServer(t)
	cfgPath := project(t, srv.URL)
	t.Setenv("FLEXIDASH_PASSWORD_ACME", "")

	out, _, err := runFlexidash(t, "sync", "acme", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, out, "missing credentials")
}

func TestImport_ScansDirectory(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runFlexidash(t, "init", dir, "--company", "archive")
	require.NoError(t, err)
	cfgPath := filepath.Join(dir, config.FileName)

	csvDump := "ucet;pocatek;stav01;stav02;stav03;stav04;stav05;stav06;stav07;stav08;stav09;stav10;stav11;stav12\n" +
		"221000;10;10;10;10;10;10;10;10;10;10;10;10;10\n" +
		"411000;-10;-10;-10;-10;-10;-10;-10;-10;-10;-10;-10;-10;-10\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, commands.ImportDir, "tb-2022.csv"), []byte(csvDump), 0o644))

	out, _, err := runFlexidash(t, "import", "archive", "--year", "2022", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "archive")
	assert.Contains(t, out, "2022")

	_, err = os.Stat(filepath.Join(dir, commands.ImportDir, "processed", "tb-2022.csv"))
	assert.NoError(t, err)

	out, _, err = runFlexidash(t, "report", "archive", "--year", "2022", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "archive 2022")

	out, _, err = runFlexidash(t, "import", "archive", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to import")
}

func TestImport_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runFlexidash(t, "init", dir, "--company", "acme")
	require.NoError(t, err)
	cfgPath := filepath.Join(dir, config.FileName)

	path := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, os.WriteFile(path, []byte(balancedDump()), 0o644))

	_, _, err = runFlexidash(t, "import", "acme", path, "--year", "2021", "--config", cfgPath)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err, "explicit files stay in place")

	entries, err := synclog.New(filepath.Join(dir, "logs")).Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, synclog.ActionImported, entries[0].Action)
	assert.Equal(t, "dump.json", entries[0].Details)
}

func TestImport_RefusesSeveralFilesForOneYear(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runFlexidash(t, "init", dir, "--company", "acme")
	require.NoError(t, err)
	cfgPath := filepath.Join(dir, config.FileName)

	importDir := filepath.Join(dir, commands.ImportDir)
	for _, name := range []string{"jan.json", "feb.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(importDir, name), []byte(balancedDump()), 0o644))
	}

	_, _, err = runFlexidash(t, "import", "acme", "--year", "2023", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feb.json, jan.json")

	for _, name := range []string{"jan.json", "feb.json"} {
		_, err := os.Stat(filepath.Join(importDir, name))
		assert.NoError(t, err, "%s stays unprocessed", name)
	}
	entries, err := synclog.New(filepath.Join(dir, "logs")).Read()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
