package statements

import "github.com/shopspring/decimal"

// balanceTolerance is one rounding unit.
var balanceTolerance = decimal.New(1, -2)

// Imbalance reports a snapshot whose two sides disagree.
type Imbalance struct {
	Month                int
	Assets               decimal.Decimal
	LiabilitiesAndEquity decimal.Decimal
}

// Difference returns assets minus liabilities and equity.
func (i Imbalance) Difference() decimal.Decimal {
	return i.Assets.Sub(i.LiabilitiesAndEquity)
}

// Check lists balance-sheet snapshots where assets and liabilities_and_equity
// differ by more than 0.01. Aggregation never calls it; clean input is
// expected to return nothing.
func (r Result) Check() []Imbalance {
	var out []Imbalance
	for _, p := range r.BalanceSheet.Monthly {
		im := Imbalance{
			Month:                p.Month,
			Assets:               p.Get(Assets),
			LiabilitiesAndEquity: p.Get(LiabilitiesAndEquity),
		}
		if im.Difference().Abs().GreaterThan(balanceTolerance) {
			out = append(out, im)
		}
	}
	return out
}
