package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Sync.Year = 2025
	cfg.Report.CurrentYearResult = true
	cfg.Companies = []Company{
		{ID: "acme", Name: "Acme s.r.o.", URL: "https://acme.flexibee.eu/c/acme", User: "api", Currency: "EUR"},
	}

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Storage, got.Storage)
	assert.Equal(t, cfg.Logs, got.Logs)
	assert.Equal(t, cfg.Sync, got.Sync)
	assert.True(t, got.Report.CurrentYearResult)
	require.Len(t, got.Companies, 1)
	assert.Equal(t, cfg.Companies[0], got.Companies[0])
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "flexidash.db", cfg.Storage.Path)
	assert.Equal(t, "logs", cfg.Logs.Dir)
	assert.Equal(t, 15*time.Minute, cfg.Sync.Interval.Std())
	assert.Equal(t, 2*time.Minute, cfg.Sync.Timeout.Std())
	assert.Equal(t, 4, cfg.Sync.Concurrency)
	assert.False(t, cfg.Report.CurrentYearResult)
	assert.Empty(t, cfg.Companies)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("sync:\n  interval: 1h\ncompanies:\n  - id: a\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Sync.Interval.Std())
	assert.Equal(t, 4, cfg.Sync.Concurrency)
	assert.Equal(t, "flexidash.db", cfg.Storage.Path)
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("sync:\n  timeout: soon\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "soon")
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default()
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "path: flexidash.db")
	assert.Contains(t, contents, "interval: 15m0s")
	assert.Contains(t, contents, "concurrency: 4")
	assert.Contains(t, contents, "current_year_result: false")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Sync.Concurrency = 0
	cfg.Sync.Year = 42
	cfg.Companies = []Company{{ID: "a"}, {ID: "a"}, {}}

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "concurrency")
	assert.Contains(t, msg, "sync.year 42")
	assert.Contains(t, msg, `duplicate id "a"`)
	assert.Contains(t, msg, "companies[2]: id is empty")
}

func TestCompany(t *testing.T) {
	cfg := Default()
	cfg.Companies = []Company{{ID: "a", Name: "A"}, {ID: "b", URL: "u", User: "x"}}

	co, ok := cfg.Company("b")
	require.True(t, ok)
	assert.True(t, co.Syncable())

	co, ok = cfg.Company("a")
	require.True(t, ok)
	assert.False(t, co.Syncable())

	_, ok = cfg.Company("zzz")
	assert.False(t, ok)
}

func TestYearOr(t *testing.T) {
	cfg := Default()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2026, cfg.YearOr(now))
	cfg.Sync.Year = 2024
	assert.Equal(t, 2024, cfg.YearOr(now))
}

func TestResolvePaths(t *testing.T) {
	cfg := Default()
	cfg.Companies = []Company{{ID: "a", ChartFile: "charts/a.csv"}, {ID: "b"}}
	cfg.ResolvePaths("/srv/dash")

	assert.Equal(t, "/srv/dash/flexidash.db", cfg.Storage.Path)
	assert.Equal(t, "/srv/dash/logs", cfg.Logs.Dir)
	assert.Equal(t, "/srv/dash/.env", cfg.EnvFile)
	assert.Equal(t, "/srv/dash/charts/a.csv", cfg.Companies[0].ChartFile)
	assert.Empty(t, cfg.Companies[1].ChartFile)

	mem := Default()
	mem.Storage.Path = ":memory:"
	mem.ResolvePaths("/x")
	assert.Equal(t, ":memory:", mem.Storage.Path)
}
