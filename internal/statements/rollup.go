package statements

import (
	"github.com/shopspring/decimal"

	"github.com/flexidash/flexidash/internal/chart"
)

// Derived income statement lines.
const (
	RevenueTotal    = "revenue_total"
	// CostsTotal sums the operating cost groups. Income tax (costs_income_tax)
	// is not part of it and only enters profit_after_tax.
	CostsTotal      = "costs_total"
	ProfitBeforeTax = "profit_before_tax"
	ProfitAfterTax  = "profit_after_tax"
)

// Derived balance sheet lines.
const (
	FixedAssetsTotal          = "fixed_assets_total"
	InventoryTotal            = "inventory_total"
	ReceivablesTotal          = "receivables_total"
	FinancialAssetsTotal      = "financial_assets_total"
	AccrualsTotal             = "accruals_total"
	CorrectionsTotal          = "corrections_total"
	CurrentAssetsTotal        = "current_assets_total"
	Assets                    = "assets"
	EquityTotal               = "equity_total"
	LiabilitiesLongTermTotal  = "liabilities_long_term_total"
	LiabilitiesShortTermTotal = "liabilities_short_term_total"
	AccrualsLiabilitiesTotal  = "accruals_liabilities_total"
	LiabilitiesTotal          = "liabilities_total"
	LiabilitiesAndEquity      = "liabilities_and_equity"
)

// Term is one addend of a roll-up: either the sum of a category group or an
// earlier total, with an explicit sign.
type Term struct {
	Group chart.Group
	Total string
	Sign  int
}

// Rule defines a derived line as a signed sum of terms.
type Rule struct {
	Key   string
	Terms []Term
}

func group(g chart.Group) Term { return Term{Group: g, Sign: 1} }
func total(k string) Term { return Term{Total: k, Sign: 1} }

func minus(t Term) Term {
	t.Sign = -t.Sign
	return t
}

// IncomeRules are evaluated in order after the income statement's raw sums.
// Income tax sits in its own group, so it is subtracted once, after the
// pre-tax result.
var IncomeRules = []Rule{
	{RevenueTotal, []Term{group(chart.GroupRevenue)}},
	{CostsTotal, []Term{group(chart.GroupCosts)}},
	{ProfitBeforeTax, []Term{total(RevenueTotal), minus(total(CostsTotal))}},
	{ProfitAfterTax, []Term{total(ProfitBeforeTax), minus(group(chart.GroupIncomeTax))}},
}

// BalanceRules are evaluated in order after each snapshot's raw sums.
// Correction accounts are credit balances, booked by the liability rule as
// positive magnitudes; corrections_total negates them so that it reads as an
// asset-side reduction and is added into assets.
var BalanceRules = []Rule{
	{FixedAssetsTotal, []Term{group(chart.GroupFixedAssets)}},
	{InventoryTotal, []Term{group(chart.GroupInventory)}},
	{ReceivablesTotal, []Term{group(chart.GroupReceivables)}},
	{FinancialAssetsTotal, []Term{group(chart.GroupFinancialAssets)}},
	{AccrualsTotal, []Term{group(chart.GroupAccruals)}},
	{CorrectionsTotal, []Term{minus(group(chart.GroupCorrections))}},
	{CurrentAssetsTotal, []Term{total(InventoryTotal), total(ReceivablesTotal), total(FinancialAssetsTotal), total(AccrualsTotal)}},
	{Assets, []Term{total(FixedAssetsTotal), total(CurrentAssetsTotal), total(CorrectionsTotal)}},
	{EquityTotal, []Term{group(chart.GroupEquity)}},
	{LiabilitiesLongTermTotal, []Term{group(chart.GroupLiabilitiesLongTerm)}},
	{LiabilitiesShortTermTotal, []Term{group(chart.GroupLiabilitiesShortTerm)}},
	{AccrualsLiabilitiesTotal, []Term{group(chart.GroupAccrualsLiabilities)}},
	{LiabilitiesTotal, []Term{total(LiabilitiesLongTermTotal), total(LiabilitiesShortTermTotal), total(AccrualsLiabilitiesTotal)}},
	{LiabilitiesAndEquity, []Term{total(EquityTotal), total(LiabilitiesTotal)}},
}

func ruleKeys(rules []Rule) []string {
	keys := make([]string, len(rules))
	for i, r := range rules {
		keys[i] = r.Key
	}
	return keys
}

// rollUp computes every rule into p. Group sums are taken over raw category
// values only, before any derived line is written.
func rollUp(p Period, rules []Rule, groups map[string]chart.Group) {
	sums := make(map[chart.Group]decimal.Decimal)
	for k, v := range p.Values {
		if g, ok := groups[k]; ok {
			sums[g] = sums[g].Add(v)
		}
	}

	totals := make(map[string]decimal.Decimal, len(rules))
	for _, r := range rules {
		sum := decimal.Zero
		for _, t := range r.Terms {
			v := totals[t.Total]
			if t.Total == "" {
				v = sums[t.Group]
			}
			if t.Sign < 0 {
				v = v.Neg()
			}
			sum = sum.Add(v)
		}
		totals[r.Key] = sum
		p.Values[r.Key] = sum
	}
}
