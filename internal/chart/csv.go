package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/flexidash/flexidash/internal/model"
)

const (
	numFields       = 7
	colPrefix       = 0
	colName         = 1
	colNature       = 2
	colCategory     = 3
	colAssetCat     = 4
	colLiabilityCat = 5
	colTaxable      = 6
)

// Header is the CSV header for chart files.
var Header = []string{"prefix", "name", "nature", "category", "asset_category", "liability_category", "taxable"}

// ReadEntries reads a chart CSV.
func ReadEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chart CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteEntries writes a chart CSV.
func WriteEntries(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	c := e.Classification
	row := make([]string, numFields)
	row[colPrefix] = e.Prefix
	row[colName] = c.Name
	row[colNature] = string(c.Nature)
	row[colCategory] = c.Category
	row[colAssetCat] = c.AssetCategory
	row[colLiabilityCat] = c.LiabilityCategory
	row[colTaxable] = strconv.FormatBool(c.Taxable)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	nature := model.Nature(record[colNature])
	if !nature.Valid() {
		return Entry{}, fmt.Errorf("unknown nature %q", record[colNature])
	}

	var taxable bool
	if record[colTaxable] != "" {
		var err error
		taxable, err = strconv.ParseBool(record[colTaxable])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing taxable %q: %w", record[colTaxable], err)
		}
	}

	return Entry{
		Prefix: record[colPrefix],
		Classification: model.Classification{
			Nature:            nature,
			Name:              record[colName],
			Category:          record[colCategory],
			AssetCategory:     record[colAssetCat],
			LiabilityCategory: record[colLiabilityCat],
			Taxable:           taxable,
		},
	}, nil
}

// Load reads a chart CSV file and builds a Table over the default category
// registry.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart: %w", err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart %s: %w", path, err)
	}
	t, err := NewTable(entries, DefaultCategories())
	if err != nil {
		return nil, fmt.Errorf("building chart %s: %w", path, err)
	}
	return t, nil
}

// Save writes a Table's entries to a CSV file.
func Save(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := WriteEntries(f, t.Entries()); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}
