package abraflexi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/flexidash/flexidash/internal/amount"
	"github.com/flexidash/flexidash/internal/model"
)

// Record is one loosely typed stav-uctu object as returned by the API.
type Record map[string]any

type envelope struct {
	Winstrom struct {
		StavUctu []Record `json:"stav-uctu"`
	} `json:"winstrom"`
}

// DecodeRows reads a stav-uctu response, either the full
// {"winstrom":{"stav-uctu":[...]}} envelope or a bare array of records.
func DecodeRows(r io.Reader) ([]model.RawAccountRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}

	rows := make([]model.RawAccountRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	return rows, nil
}

func decodeRecords(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []Record
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
		}
		return records, nil
	}

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
	}
	return env.Winstrom.StavUctu, nil
}

// Row converts the record into a typed row. Missing or malformed numbers are
// zero; a missing account code leaves Account empty.
func (rec Record) Row() model.RawAccountRow {
	row := model.RawAccountRow{
		Account:  rec.text("ucet"),
		Currency: rec.text("mena"),
		Opening:  amount.Parse(rec["pocatek"]),
	}
	for i := range row.Months {
		n := i + 1
		row.Months[i] = model.MonthFigures{
			Debit:   amount.Parse(rec[fmt.Sprintf("obratMd%02d", n)]),
			Credit:  amount.Parse(rec[fmt.Sprintf("obratDal%02d", n)]),
			Balance: amount.Parse(rec[fmt.Sprintf("stav%02d", n)]),
		}
	}
	return row
}

func (rec Record) text(key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	}
	return ""
}
