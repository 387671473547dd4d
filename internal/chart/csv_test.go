package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexidash/flexidash/internal/model"
)

func TestEntriesRoundTrip(t *testing.T) {
	entries := []Entry{
		cost("513", "Náklady na reprezentáciu", "costs_services"),
		dual("343", "Daň z pridanej hodnoty", "receivables_tax", "liabilities_short_term_tax"),
		closing("702", "Konečný účet súvahový"),
	}
	entries[0].Classification.Taxable = false

	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, entries))

	got, err := ReadEntries(&buf)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, entries, got)
}

func TestDefaultChartRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.csv")
	require.NoError(t, Save(path, DefaultTable()))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTable().Entries(), loaded.Entries())
}

func TestReadEntries_Header(t *testing.T) {
	in := strings.Join(Header, ",") + "\n" +
		"6,Výnosy,revenue,revenue_other_operating,,,true\n" +
		"601,Tržby,revenue,revenue_sales,,,\n"

	entries, err := ReadEntries(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.NatureRevenue, entries[1].Classification.Nature)
	assert.False(t, entries[1].Classification.Taxable, "empty taxable column parses as false")
	assert.True(t, entries[0].Classification.Taxable)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"6", "x"})
	assert.Error(t, err)

	_, err = UnmarshalEntry([]string{"6", "x", "equity", "", "", "", ""})
	assert.Error(t, err)

	_, err = UnmarshalEntry([]string{"6", "x", "revenue", "revenue_sales", "", "", "maybe"})
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.csv")
	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, []Entry{asset("0", "x", "not_a_category")}))
	require.NoError(t, os.WriteFile(bad, buf.Bytes(), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}
