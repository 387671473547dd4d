// Package export writes statement series as spreadsheet-friendly CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/flexidash/flexidash/internal/period"
	"github.com/flexidash/flexidash/internal/statements"
)

// LineColumn heads the first column of every series file.
const LineColumn = "line"

// File names written by WriteResult.
const (
	IncomeFile     = "income-statement.csv"
	CumulativeFile = "income-statement-ytd.csv"
	BalanceFile    = "balance-sheet.csv"
	ChangesFile    = "balance-changes.csv"
)

// Series is one statement laid out as lines by periods.
type Series struct {
	Year    int
	Lines   []string
	Periods []statements.Period
}

// WriteSeries writes a header of period IDs and one row per line, amounts
// with two decimals. Lines missing from a period are written as 0.00.
func WriteSeries(w io.Writer, s Series) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(s.Periods)+1)
	header = append(header, LineColumn)
	for _, p := range s.Periods {
		header = append(header, period.Format(s.Year, p.Month))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, line := range s.Lines {
		row := make([]string, 0, len(header))
		row = append(row, line)
		for _, p := range s.Periods {
			row = append(row, p.Get(line).StringFixed(2))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadSeries reads a file written by WriteSeries. All period columns must
// share one year.
func ReadSeries(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return Series{}, fmt.Errorf("reading series CSV: %w", err)
	}
	if len(records) == 0 {
		return Series{}, fmt.Errorf("reading series CSV: empty file")
	}

	header := records[0]
	if header[0] != LineColumn {
		return Series{}, fmt.Errorf("first column is %q, want %q", header[0], LineColumn)
	}

	var s Series
	for i, id := range header[1:] {
		year, month, err := period.Parse(id)
		if err != nil {
			return Series{}, fmt.Errorf("column %d: %w", i+2, err)
		}
		if i == 0 {
			s.Year = year
		} else if year != s.Year {
			return Series{}, fmt.Errorf("column %d: year %d differs from %d", i+2, year, s.Year)
		}
		s.Periods = append(s.Periods, statements.Period{Month: month, Values: make(map[string]decimal.Decimal)})
	}

	for i, rec := range records[1:] {
		line := rec[0]
		s.Lines = append(s.Lines, line)
		for j, cell := range rec[1:] {
			d, err := decimal.NewFromString(cell)
			if err != nil {
				return Series{}, fmt.Errorf("row %d, %s: parsing %q: %w", i+2, header[j+1], cell, err)
			}
			s.Periods[j].Values[line] = d
		}
	}
	return s, nil
}

// WriteResult writes the four series of a result into dir and returns the
// paths written.
func WriteResult(dir string, year int, res statements.Result, incomeLines, balanceLines []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	files := []struct {
		name   string
		series Series
	}{
		{IncomeFile, Series{Year: year, Lines: incomeLines, Periods: res.IncomeStatement.Monthly}},
		{CumulativeFile, Series{Year: year, Lines: incomeLines, Periods: res.IncomeStatement.Cumulative}},
		{BalanceFile, Series{Year: year, Lines: balanceLines, Periods: res.BalanceSheet.Monthly}},
		{ChangesFile, Series{Year: year, Lines: balanceLines, Periods: res.BalanceSheet.Changes}},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.series); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, s Series) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := WriteSeries(f, s); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
