package chart

// Statement identifies which financial statement a category belongs to.
type Statement string

const (
	StatementIncome  Statement = "income"
	StatementBalance Statement = "balance"
)

// Group is a statement section. Roll-up totals sum categories by group.
type Group string

const (
	GroupFixedAssets          Group = "fixed_assets"
	GroupCorrections          Group = "corrections"
	GroupInventory            Group = "inventory"
	GroupReceivables          Group = "receivables"
	GroupFinancialAssets      Group = "financial_assets"
	GroupAccruals             Group = "accruals"
	GroupEquity               Group = "equity"
	GroupLiabilitiesLongTerm  Group = "liabilities_long_term"
	GroupLiabilitiesShortTerm Group = "liabilities_short_term"
	GroupAccrualsLiabilities  Group = "accruals_liabilities"
	GroupRevenue              Group = "revenue"
	GroupCosts                Group = "costs"
	GroupIncomeTax            Group = "income_tax"
)

// Statement returns the statement the group is reported on.
func (g Group) Statement() Statement {
	switch g {
	case GroupRevenue, GroupCosts, GroupIncomeTax:
		return StatementIncome
	}
	return StatementBalance
}

// AssetSide reports whether the group sits on the asset side of the balance
// sheet. Corrections are asset-side reductions.
func (g Group) AssetSide() bool {
	switch g {
	case GroupFixedAssets, GroupCorrections, GroupInventory, GroupReceivables, GroupFinancialAssets, GroupAccruals:
		return true
	}
	return false
}

// Category is a statement line item that accounts roll into.
type Category struct {
	Key   string
	Group Group
	Label string
}

// Income statement line items with special meaning to the aggregator.
const (
	CategoryIncomeTax     = "costs_income_tax"
	CategoryCurrentResult = "equity_current_result"
)

// DefaultCategories returns the line items of the Slovak statement layout, in
// presentation order.
func DefaultCategories() []Category {
	return []Category{
		{"fixed_assets_intangible", GroupFixedAssets, "Intangible fixed assets"},
		{"fixed_assets_tangible", GroupFixedAssets, "Tangible fixed assets"},
		{"fixed_assets_in_progress", GroupFixedAssets, "Fixed assets under construction"},
		{"fixed_assets_advances", GroupFixedAssets, "Advances for fixed assets"},
		{"fixed_assets_financial", GroupFixedAssets, "Long-term financial assets"},

		{"corrections_intangible", GroupCorrections, "Amortization of intangible assets"},
		{"corrections_tangible", GroupCorrections, "Depreciation of tangible assets"},
		{"corrections_impairment", GroupCorrections, "Impairment of fixed assets"},
		{"corrections_inventory", GroupCorrections, "Impairment of inventory"},
		{"corrections_financial", GroupCorrections, "Impairment of financial accounts"},
		{"corrections_receivables", GroupCorrections, "Impairment of receivables"},

		{"inventory_material", GroupInventory, "Material"},
		{"inventory_own_production", GroupInventory, "Work in progress and own products"},
		{"inventory_goods", GroupInventory, "Goods"},

		{"receivables_trade", GroupReceivables, "Trade receivables"},
		{"receivables_advances", GroupReceivables, "Advances paid"},
		{"receivables_employees", GroupReceivables, "Receivables from employees"},
		{"receivables_social", GroupReceivables, "Social and health insurance receivables"},
		{"receivables_tax", GroupReceivables, "Tax receivables"},
		{"receivables_related", GroupReceivables, "Receivables from partners and related parties"},
		{"receivables_deferred_tax", GroupReceivables, "Deferred tax asset"},
		{"receivables_other", GroupReceivables, "Other receivables"},

		{"financial_assets_cash", GroupFinancialAssets, "Cash"},
		{"financial_assets_bank", GroupFinancialAssets, "Bank accounts"},
		{"financial_assets_securities", GroupFinancialAssets, "Short-term financial assets"},
		{"financial_assets_in_transit", GroupFinancialAssets, "Cash in transit"},

		{"accruals_prepaid_expenses", GroupAccruals, "Prepaid expenses"},
		{"accruals_accrued_income", GroupAccruals, "Accrued income"},

		{"equity_share_capital", GroupEquity, "Share capital"},
		{"equity_capital_funds", GroupEquity, "Capital funds"},
		{"equity_reserve_funds", GroupEquity, "Funds from profit"},
		{"equity_retained_earnings", GroupEquity, "Retained earnings"},
		{"equity_result_approval", GroupEquity, "Result awaiting approval"},
		{CategoryCurrentResult, GroupEquity, "Current year result"},

		{"liabilities_long_term_provisions", GroupLiabilitiesLongTerm, "Provisions"},
		{"liabilities_long_term_loans", GroupLiabilitiesLongTerm, "Long-term bank loans"},
		{"liabilities_long_term_deferred_tax", GroupLiabilitiesLongTerm, "Deferred tax liability"},
		{"liabilities_long_term_other", GroupLiabilitiesLongTerm, "Other long-term liabilities"},

		{"liabilities_short_term_trade", GroupLiabilitiesShortTerm, "Trade payables"},
		{"liabilities_short_term_advances", GroupLiabilitiesShortTerm, "Advances received"},
		{"liabilities_short_term_employees", GroupLiabilitiesShortTerm, "Payables to employees"},
		{"liabilities_short_term_social", GroupLiabilitiesShortTerm, "Social and health insurance payables"},
		{"liabilities_short_term_tax", GroupLiabilitiesShortTerm, "Tax payables"},
		{"liabilities_short_term_related", GroupLiabilitiesShortTerm, "Payables to partners and related parties"},
		{"liabilities_short_term_provisions", GroupLiabilitiesShortTerm, "Short-term provisions"},
		{"liabilities_short_term_loans", GroupLiabilitiesShortTerm, "Short-term bank loans and overdrafts"},
		{"liabilities_short_term_other", GroupLiabilitiesShortTerm, "Other short-term liabilities"},

		{"accruals_liabilities_accrued_expenses", GroupAccrualsLiabilities, "Accrued expenses"},
		{"accruals_liabilities_deferred_income", GroupAccrualsLiabilities, "Deferred income"},

		{"revenue_sales", GroupRevenue, "Sales of products and services"},
		{"revenue_goods", GroupRevenue, "Sales of goods"},
		{"revenue_inventory_change", GroupRevenue, "Change in own inventory"},
		{"revenue_capitalization", GroupRevenue, "Capitalization"},
		{"revenue_other_operating", GroupRevenue, "Other operating revenue"},
		{"revenue_provisions_release", GroupRevenue, "Release of provisions and impairments"},
		{"revenue_interest", GroupRevenue, "Interest income"},
		{"revenue_financial", GroupRevenue, "Other financial revenue"},

		{"costs_consumed_purchases", GroupCosts, "Consumed purchases"},
		{"costs_goods_sold", GroupCosts, "Cost of goods sold"},
		{"costs_services", GroupCosts, "Services"},
		{"costs_personnel", GroupCosts, "Personnel costs"},
		{"costs_taxes_fees", GroupCosts, "Taxes and fees"},
		{"costs_other_operating", GroupCosts, "Other operating costs"},
		{"costs_depreciation", GroupCosts, "Depreciation"},
		{"costs_provisions", GroupCosts, "Provisions and impairments"},
		{"costs_interest", GroupCosts, "Interest expense"},
		{"costs_financial", GroupCosts, "Other financial costs"},

		{CategoryIncomeTax, GroupIncomeTax, "Income tax"},
	}
}
