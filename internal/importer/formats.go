package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/flexidash/flexidash/internal/abraflexi"
	"github.com/flexidash/flexidash/internal/model"
)

// JSONParser reads a saved stav-uctu JSON response.
type JSONParser struct{}

func (p *JSONParser) Format() string { return "json" }

func (p *JSONParser) Parse(r io.Reader) ([]model.RawAccountRow, error) {
	return abraflexi.DecodeRows(r)
}

// CSVParser reads a stav-uctu export in CSV form. The header names the
// AbraFlexi fields (ucet, mena, pocatek, obratMd01, obratDal01, stav01, ...);
// unknown columns are ignored and missing ones read as zero. Amounts may use
// a decimal comma. Both ',' and ';' separated files are accepted.
type CSVParser struct{}

func (p *CSVParser) Format() string { return "csv" }

func (p *CSVParser) Parse(r io.Reader) ([]model.RawAccountRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading trial balance CSV: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectComma(text)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading trial balance CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	header := records[0]
	hasAccount := false
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if header[i] == "ucet" {
			hasAccount = true
		}
	}
	if !hasAccount {
		return nil, errors.New(`trial balance CSV has no "ucet" column`)
	}

	rows := make([]model.RawAccountRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		record := make(abraflexi.Record, len(header))
		for i, cell := range rec {
			record[header[i]] = cell
		}
		rows = append(rows, record.Row())
	}
	return rows, nil
}

// detectComma picks ';' when the header line has more semicolons than commas.
func detectComma(text string) rune {
	line, _, _ := strings.Cut(text, "\n")
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
