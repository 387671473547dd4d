package statements

import (
	"github.com/shopspring/decimal"

	"github.com/flexidash/flexidash/internal/amount"
	"github.com/flexidash/flexidash/internal/chart"
	"github.com/flexidash/flexidash/internal/model"
)

// Classifier resolves account codes and lists the line items of each
// statement. *chart.Table implements it.
type Classifier interface {
	Classify(code string) (model.Classification, bool)
	Categories(s chart.Statement) []chart.Category
}

// Options tune aggregation beyond the default statement layout.
type Options struct {
	// CurrentYearResult books the running result of cost and revenue
	// accounts into equity_current_result, so a year that has not been
	// closed yet still balances.
	CurrentYearResult bool
}

// IncomeStatement holds the twelve monthly periods and their year-to-date
// running sums.
type IncomeStatement struct {
	Monthly    []Period `json:"monthly"`
	Cumulative []Period `json:"cumulative"`
}

// BalanceSheet holds the opening snapshot plus twelve month-end snapshots,
// and the month-over-month change of every line.
type BalanceSheet struct {
	Monthly []Period `json:"monthly"`
	Changes []Period `json:"changes"`
}

// Result is the processed output for one company and year.
type Result struct {
	IncomeStatement IncomeStatement `json:"incomeStatement"`
	BalanceSheet    BalanceSheet    `json:"balanceSheet"`
}

// Aggregator turns trial-balance rows into statements. It holds no mutable
// state and may be shared between goroutines.
type Aggregator struct {
	classifier   Classifier
	opts         Options
	groups       map[string]chart.Group
	incomeLines  []string
	balanceLines []string
}

// New creates an Aggregator over a classifier.
func New(c Classifier, opts Options) *Aggregator {
	a := &Aggregator{
		classifier: c,
		opts:       opts,
		groups:     make(map[string]chart.Group),
	}
	for _, cat := range c.Categories(chart.StatementIncome) {
		a.groups[cat.Key] = cat.Group
		a.incomeLines = append(a.incomeLines, cat.Key)
	}
	for _, cat := range c.Categories(chart.StatementBalance) {
		a.groups[cat.Key] = cat.Group
		a.balanceLines = append(a.balanceLines, cat.Key)
	}
	a.incomeLines = append(a.incomeLines, ruleKeys(IncomeRules)...)
	a.balanceLines = append(a.balanceLines, ruleKeys(BalanceRules)...)
	return a
}

// Aggregate runs the default aggregation over rows.
func Aggregate(rows []model.RawAccountRow, c Classifier) Result {
	return New(c, Options{}).Aggregate(rows)
}

// Lines returns every line key of a statement in presentation order:
// categories first, then derived totals.
func (a *Aggregator) Lines(s chart.Statement) []string {
	if s == chart.StatementIncome {
		return append([]string(nil), a.incomeLines...)
	}
	return append([]string(nil), a.balanceLines...)
}

// Aggregate classifies every row and builds both statements. Unclassified
// rows and closing accounts contribute nothing. A nil or empty row set yields
// zero-filled statements.
func (a *Aggregator) Aggregate(rows []model.RawAccountRow) Result {
	income := make([]Period, model.MonthsPerYear)
	for i := range income {
		income[i] = newPeriod(i+1, a.incomeLines)
	}
	balance := make([]Period, model.MonthsPerYear+1)
	for i := range balance {
		balance[i] = newPeriod(i, a.balanceLines)
	}

	for _, row := range rows {
		c, ok := a.classifier.Classify(row.Account)
		if !ok {
			continue
		}
		a.addIncome(income, row, c)
		a.addBalance(balance, row, c)
	}

	for _, p := range income {
		rollUp(p, IncomeRules, a.groups)
		round(p)
	}
	for _, p := range balance {
		rollUp(p, BalanceRules, a.groups)
		round(p)
	}

	return Result{
		IncomeStatement: IncomeStatement{
			Monthly:    income,
			Cumulative: cumulative(income),
		},
		BalanceSheet: BalanceSheet{
			Monthly: balance,
			Changes: changes(balance),
		},
	}
}

// addIncome books monthly turnovers. Revenue is credit-normal, cost is
// debit-normal; both come out positive when the account moves its usual way.
func (a *Aggregator) addIncome(income []Period, row model.RawAccountRow, c model.Classification) {
	switch c.Nature {
	case model.NatureRevenue:
		for i, m := range row.Months {
			income[i].add(c.Category, m.Credit.Sub(m.Debit))
		}
	case model.NatureCost:
		for i, m := range row.Months {
			income[i].add(c.Category, m.Debit.Sub(m.Credit))
		}
	}
}

// addBalance books the opening and month-end balances. The feed carries
// credit balances as negative numbers, so liabilities are subtracted to come
// out positive.
func (a *Aggregator) addBalance(balance []Period, row model.RawAccountRow, c model.Classification) {
	for i, b := range row.Balances() {
		switch c.Nature {
		case model.NatureAsset:
			balance[i].add(c.Category, b)
		case model.NatureLiability:
			balance[i].add(c.Category, b.Neg())
		case model.NatureDualSign:
			cat, asset := c.Route(b)
			if asset {
				balance[i].add(cat, b)
			} else {
				balance[i].add(cat, b.Neg())
			}
		case model.NatureCost, model.NatureRevenue:
			if a.opts.CurrentYearResult {
				balance[i].add(chart.CategoryCurrentResult, b.Neg())
			}
		}
	}
}

func round(p Period) {
	for k, v := range p.Values {
		p.Values[k] = amount.Round(v)
	}
}

// cumulative returns year-to-date sums of already rounded monthly periods.
func cumulative(monthly []Period) []Period {
	out := make([]Period, len(monthly))
	var running Period
	for i, p := range monthly {
		if i == 0 {
			running = p.clone()
		} else {
			running = running.clone()
			running.Month = p.Month
			for k, v := range p.Values {
				running.add(k, v)
			}
		}
		out[i] = running
	}
	return out
}

// changes returns snapshot[i] - snapshot[i-1] for every month-end snapshot.
func changes(snapshots []Period) []Period {
	if len(snapshots) < 2 {
		return nil
	}
	out := make([]Period, 0, len(snapshots)-1)
	for i := 1; i < len(snapshots); i++ {
		cur, prev := snapshots[i], snapshots[i-1]
		d := Period{Month: cur.Month, Values: make(map[string]decimal.Decimal, len(cur.Values))}
		for k, v := range cur.Values {
			d.Values[k] = v.Sub(prev.Get(k))
		}
		out = append(out, d)
	}
	return out
}
