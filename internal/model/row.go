package model

import "github.com/shopspring/decimal"

// MonthsPerYear is the number of reporting periods in an accounting year.
const MonthsPerYear = 12

// MonthFigures holds one month of a trial-balance row.
type MonthFigures struct {
	Debit   decimal.Decimal // obratMd
	Credit  decimal.Decimal // obratDal
	Balance decimal.Decimal // stav, month-end
}

// RawAccountRow is one account's trial balance for a reporting year.
// Months[0] is January.
type RawAccountRow struct {
	Account  string
	Currency string
	Opening  decimal.Decimal // pocatek
	Months   [MonthsPerYear]MonthFigures
}

// Balances returns the opening balance followed by the twelve month-end
// balances, indexed the same way as balance-sheet snapshots.
func (r RawAccountRow) Balances() [MonthsPerYear + 1]decimal.Decimal {
	var out [MonthsPerYear + 1]decimal.Decimal
	out[0] = r.Opening
	for i, m := range r.Months {
		out[i+1] = m.Balance
	}
	return out
}
