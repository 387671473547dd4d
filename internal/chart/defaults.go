package chart

import "github.com/flexidash/flexidash/internal/model"

// DefaultTable returns the compiled-in Slovak chart of accounts.
func DefaultTable() *Table {
	t, err := NewTable(DefaultEntries(), DefaultCategories())
	if err != nil {
		panic("chart: invalid default table: " + err.Error())
	}
	return t
}

// DefaultEntries returns the prefix mappings of the Slovak framework chart of
// accounts for entrepreneurs. Class 8 and 9 (internal accounts) are left
// unmapped on purpose.
func DefaultEntries() []Entry {
	return []Entry{
		// Class 0: fixed assets.
		asset("0", "Dlhodobý majetok", "fixed_assets_tangible"),
		asset("01", "Dlhodobý nehmotný majetok", "fixed_assets_intangible"),
		asset("012", "Aktivované náklady na vývoj", "fixed_assets_intangible"),
		asset("013", "Softvér", "fixed_assets_intangible"),
		asset("014", "Oceniteľné práva", "fixed_assets_intangible"),
		asset("015", "Goodwill", "fixed_assets_intangible"),
		asset("02", "Dlhodobý hmotný majetok odpisovaný", "fixed_assets_tangible"),
		asset("021", "Stavby", "fixed_assets_tangible"),
		asset("022", "Samostatné hnuteľné veci a súbory hnuteľných vecí", "fixed_assets_tangible"),
		asset("03", "Dlhodobý hmotný majetok neodpisovaný", "fixed_assets_tangible"),
		asset("031", "Pozemky", "fixed_assets_tangible"),
		asset("04", "Obstaranie dlhodobého majetku", "fixed_assets_in_progress"),
		asset("05", "Poskytnuté preddavky na dlhodobý majetok", "fixed_assets_advances"),
		asset("06", "Dlhodobý finančný majetok", "fixed_assets_financial"),
		liability("07", "Oprávky k dlhodobému nehmotnému majetku", "corrections_intangible"),
		liability("08", "Oprávky k dlhodobému hmotnému majetku", "corrections_tangible"),
		liability("09", "Opravné položky k dlhodobému majetku", "corrections_impairment"),

		// Class 1: inventory.
		asset("1", "Zásoby", "inventory_material"),
		asset("11", "Materiál", "inventory_material"),
		asset("112", "Materiál na sklade", "inventory_material"),
		asset("12", "Zásoby vlastnej výroby", "inventory_own_production"),
		asset("121", "Nedokončená výroba", "inventory_own_production"),
		asset("123", "Výrobky", "inventory_own_production"),
		asset("13", "Tovar", "inventory_goods"),
		asset("132", "Tovar na sklade a v predajniach", "inventory_goods"),
		liability("19", "Opravné položky k zásobám", "corrections_inventory"),

		// Class 2: financial accounts.
		asset("2", "Finančné účty", "financial_assets_bank"),
		asset("21", "Peniaze", "financial_assets_cash"),
		asset("211", "Pokladnica", "financial_assets_cash"),
		asset("213", "Ceniny", "financial_assets_cash"),
		dual("22", "Účty v bankách", "financial_assets_bank", "liabilities_short_term_loans"),
		dual("221", "Bankové účty", "financial_assets_bank", "liabilities_short_term_loans"),
		liability("23", "Bežné bankové úvery", "liabilities_short_term_loans"),
		liability("24", "Krátkodobé finančné výpomoci", "liabilities_short_term_loans"),
		asset("25", "Krátkodobý finančný majetok", "financial_assets_securities"),
		asset("26", "Prevody medzi finančnými účtami", "financial_assets_in_transit"),
		liability("29", "Opravné položky k finančným účtom", "corrections_financial"),

		// Class 3: clearing accounts, receivables and payables.
		dual("3", "Zúčtovacie vzťahy", "receivables_other", "liabilities_short_term_other"),
		asset("31", "Pohľadávky", "receivables_trade"),
		asset("311", "Odberatelia", "receivables_trade"),
		asset("312", "Zmenky na inkaso", "receivables_trade"),
		asset("314", "Poskytnuté preddavky", "receivables_advances"),
		asset("315", "Ostatné pohľadávky", "receivables_other"),
		liability("32", "Záväzky", "liabilities_short_term_trade"),
		liability("321", "Dodávatelia", "liabilities_short_term_trade"),
		liability("322", "Zmenky na úhradu", "liabilities_short_term_trade"),
		liability("323", "Krátkodobé rezervy", "liabilities_short_term_provisions"),
		liability("324", "Prijaté preddavky", "liabilities_short_term_advances"),
		liability("325", "Ostatné záväzky", "liabilities_short_term_other"),
		liability("33", "Zúčtovanie so zamestnancami a inštitúciami", "liabilities_short_term_employees"),
		liability("331", "Zamestnanci", "liabilities_short_term_employees"),
		liability("333", "Ostatné záväzky voči zamestnancom", "liabilities_short_term_employees"),
		asset("335", "Pohľadávky voči zamestnancom", "receivables_employees"),
		dual("336", "Zúčtovanie s orgánmi sociálneho a zdravotného poistenia", "receivables_social", "liabilities_short_term_social"),
		dual("34", "Zúčtovanie daní a dotácií", "receivables_tax", "liabilities_short_term_tax"),
		dual("341", "Daň z príjmov", "receivables_tax", "liabilities_short_term_tax"),
		dual("342", "Ostatné priame dane", "receivables_tax", "liabilities_short_term_tax"),
		dual("343", "Daň z pridanej hodnoty", "receivables_tax", "liabilities_short_term_tax"),
		dual("345", "Ostatné dane a poplatky", "receivables_tax", "liabilities_short_term_tax"),
		dual("346", "Dotácie zo štátneho rozpočtu", "receivables_other", "liabilities_short_term_other"),
		dual("347", "Ostatné dotácie", "receivables_other", "liabilities_short_term_other"),
		asset("35", "Pohľadávky voči spoločníkom a združeniu", "receivables_related"),
		liability("36", "Záväzky voči spoločníkom a združeniu", "liabilities_short_term_related"),
		dual("37", "Iné pohľadávky a záväzky", "receivables_other", "liabilities_short_term_other"),
		asset("378", "Iné pohľadávky", "receivables_other"),
		liability("379", "Iné záväzky", "liabilities_short_term_other"),
		asset("38", "Časové rozlíšenie", "accruals_prepaid_expenses"),
		asset("381", "Náklady budúcich období", "accruals_prepaid_expenses"),
		asset("382", "Komplexné náklady budúcich období", "accruals_prepaid_expenses"),
		liability("383", "Výdavky budúcich období", "accruals_liabilities_accrued_expenses"),
		liability("384", "Výnosy budúcich období", "accruals_liabilities_deferred_income"),
		asset("385", "Príjmy budúcich období", "accruals_accrued_income"),
		liability("39", "Opravné položky k pohľadávkam", "corrections_receivables"),
		dual("395", "Vnútorné zúčtovanie", "receivables_other", "liabilities_short_term_other"),
		dual("398", "Spojovací účet pri združení", "receivables_other", "liabilities_short_term_other"),

		// Class 4: equity and long-term liabilities.
		liability("4", "Kapitálové účty a dlhodobé záväzky", "liabilities_long_term_other"),
		liability("41", "Základné imanie a kapitálové fondy", "equity_capital_funds"),
		liability("411", "Základné imanie", "equity_share_capital"),
		liability("412", "Emisné ážio", "equity_capital_funds"),
		liability("413", "Ostatné kapitálové fondy", "equity_capital_funds"),
		liability("414", "Oceňovacie rozdiely z precenenia majetku a záväzkov", "equity_capital_funds"),
		liability("42", "Fondy zo zisku a prevedené výsledky hospodárenia", "equity_reserve_funds"),
		liability("421", "Zákonný rezervný fond", "equity_reserve_funds"),
		liability("427", "Ostatné fondy", "equity_reserve_funds"),
		liability("428", "Nerozdelený zisk minulých rokov", "equity_retained_earnings"),
		liability("429", "Neuhradená strata minulých rokov", "equity_retained_earnings"),
		liability("43", "Výsledok hospodárenia", "equity_result_approval"),
		liability("431", "Výsledok hospodárenia v schvaľovaní", "equity_result_approval"),
		liability("45", "Rezervy", "liabilities_long_term_provisions"),
		liability("46", "Bankové úvery", "liabilities_long_term_loans"),
		liability("47", "Dlhodobé záväzky", "liabilities_long_term_other"),
		liability("473", "Vydané dlhopisy", "liabilities_long_term_other"),
		dual("48", "Odložený daňový záväzok a pohľadávka", "receivables_deferred_tax", "liabilities_long_term_deferred_tax"),
		liability("49", "Individuálny podnikateľ", "equity_capital_funds"),

		// Class 5: costs.
		cost("5", "Náklady", "costs_other_operating"),
		cost("50", "Spotrebované nákupy", "costs_consumed_purchases"),
		cost("501", "Spotreba materiálu", "costs_consumed_purchases"),
		cost("502", "Spotreba energie", "costs_consumed_purchases"),
		cost("503", "Spotreba ostatných neskladovateľných dodávok", "costs_consumed_purchases"),
		cost("504", "Predaný tovar", "costs_goods_sold"),
		cost("505", "Tvorba a zúčtovanie opravných položiek k zásobám", "costs_provisions"),
		cost("507", "Predaná nehnuteľnosť", "costs_goods_sold"),
		cost("51", "Služby", "costs_services"),
		cost("511", "Opravy a udržiavanie", "costs_services"),
		cost("512", "Cestovné", "costs_services"),
		nonDeductible(cost("513", "Náklady na reprezentáciu", "costs_services")),
		cost("518", "Ostatné služby", "costs_services"),
		cost("52", "Osobné náklady", "costs_personnel"),
		cost("521", "Mzdové náklady", "costs_personnel"),
		cost("524", "Zákonné sociálne poistenie", "costs_personnel"),
		cost("527", "Zákonné sociálne náklady", "costs_personnel"),
		nonDeductible(cost("528", "Ostatné sociálne náklady", "costs_personnel")),
		cost("53", "Dane a poplatky", "costs_taxes_fees"),
		cost("531", "Daň z motorových vozidiel", "costs_taxes_fees"),
		cost("532", "Daň z nehnuteľností", "costs_taxes_fees"),
		cost("538", "Ostatné dane a poplatky", "costs_taxes_fees"),
		cost("54", "Iné náklady na hospodársku činnosť", "costs_other_operating"),
		cost("541", "Zostatková cena predaného dlhodobého majetku", "costs_other_operating"),
		cost("542", "Predaný materiál", "costs_other_operating"),
		nonDeductible(cost("543", "Dary", "costs_other_operating")),
		cost("544", "Zmluvné pokuty, penále a úroky z omeškania", "costs_other_operating"),
		nonDeductible(cost("545", "Ostatné pokuty, penále a úroky z omeškania", "costs_other_operating")),
		cost("546", "Odpis pohľadávky a predaná pohľadávka", "costs_other_operating"),
		cost("548", "Ostatné náklady na hospodársku činnosť", "costs_other_operating"),
		cost("549", "Manká a škody", "costs_other_operating"),
		cost("55", "Odpisy, rezervy a opravné položky", "costs_provisions"),
		cost("551", "Odpisy dlhodobého nehmotného a hmotného majetku", "costs_depreciation"),
		cost("552", "Tvorba a zúčtovanie rezerv", "costs_provisions"),
		cost("553", "Tvorba a zúčtovanie opravných položiek", "costs_provisions"),
		cost("557", "Zúčtovanie komplexných nákladov budúcich období", "costs_provisions"),
		cost("56", "Finančné náklady", "costs_financial"),
		cost("561", "Predané cenné papiere a podiely", "costs_financial"),
		cost("562", "Úroky", "costs_interest"),
		cost("563", "Kurzové straty", "costs_financial"),
		cost("568", "Ostatné finančné náklady", "costs_financial"),
		nonDeductible(cost("59", "Dane z príjmov", CategoryIncomeTax)),
		nonDeductible(cost("591", "Splatná daň z príjmov", CategoryIncomeTax)),
		nonDeductible(cost("592", "Odložená daň z príjmov", CategoryIncomeTax)),
		nonDeductible(cost("595", "Dodatočné odvody dane z príjmov", CategoryIncomeTax)),

		// Class 6: revenue.
		revenue("6", "Výnosy", "revenue_other_operating"),
		revenue("60", "Tržby za vlastné výkony a tovar", "revenue_sales"),
		revenue("601", "Tržby za vlastné výrobky", "revenue_sales"),
		revenue("602", "Tržby z predaja služieb", "revenue_sales"),
		revenue("604", "Tržby za tovar", "revenue_goods"),
		revenue("607", "Výnosy z nehnuteľnosti na predaj", "revenue_other_operating"),
		revenue("61", "Zmeny stavu vnútroorganizačných zásob", "revenue_inventory_change"),
		revenue("62", "Aktivácia", "revenue_capitalization"),
		revenue("64", "Iné výnosy z hospodárskej činnosti", "revenue_other_operating"),
		revenue("65", "Zúčtovanie rezerv a opravných položiek", "revenue_provisions_release"),
		revenue("66", "Finančné výnosy", "revenue_financial"),
		revenue("662", "Úroky", "revenue_interest"),
		revenue("663", "Kurzové zisky", "revenue_financial"),

		// Class 7: opening, closing and off-balance accounts.
		closing("7", "Závierkové a podsúvahové účty"),
		closing("70", "Účty otvorenia a uzavretia"),
		closing("701", "Začiatočný účet súvahový"),
		closing("702", "Konečný účet súvahový"),
		closing("71", "Účet ziskov a strát"),
		closing("710", "Účet ziskov a strát"),
	}
}

func entry(prefix, name string, c model.Classification) Entry {
	c.Name = name
	return Entry{Prefix: prefix, Classification: c}
}

func asset(prefix, name, category string) Entry {
	return entry(prefix, name, model.Single(model.NatureAsset, category))
}

func liability(prefix, name, category string) Entry {
	return entry(prefix, name, model.Single(model.NatureLiability, category))
}

func dual(prefix, name, assetCategory, liabilityCategory string) Entry {
	return entry(prefix, name, model.Dual(assetCategory, liabilityCategory))
}

func cost(prefix, name, category string) Entry {
	e := entry(prefix, name, model.Single(model.NatureCost, category))
	e.Classification.Taxable = true
	return e
}

func revenue(prefix, name, category string) Entry {
	e := entry(prefix, name, model.Single(model.NatureRevenue, category))
	e.Classification.Taxable = true
	return e
}

func closing(prefix, name string) Entry {
	return entry(prefix, name, model.Single(model.NatureClosing, ""))
}

// nonDeductible marks a cost as not tax-deductible.
func nonDeductible(e Entry) Entry {
	e.Classification.Taxable = false
	return e
}
