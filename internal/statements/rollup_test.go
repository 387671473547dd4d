package statements

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flexidash/flexidash/internal/chart"
)

func TestRollUp_DeclaredSigns(t *testing.T) {
	groups := map[string]chart.Group{
		"a": chart.GroupRevenue,
		"b": chart.GroupCosts,
	}
	rules := []Rule{
		{"net", []Term{group(chart.GroupRevenue), minus(group(chart.GroupCosts))}},
		{"twice", []Term{total("net"), total("net")}},
		{"negated", []Term{minus(total("twice"))}},
	}

	p := newPeriod(1, []string{"a", "b"})
	p.add("a", dec("10"))
	p.add("b", dec("3"))
	rollUp(p, rules, groups)

	assertAmount(t, "7", p.Get("net"))
	assertAmount(t, "14", p.Get("twice"))
	assertAmount(t, "-14", p.Get("negated"))
	assertAmount(t, "10", p.Get("a"), "raw values stay untouched")
}

func TestRollUp_IgnoresUngroupedKeys(t *testing.T) {
	p := newPeriod(1, nil)
	p.add("unregistered", dec("99"))
	rollUp(p, IncomeRules, map[string]chart.Group{})

	assertAmount(t, "0", p.Get(RevenueTotal))
	assertAmount(t, "0", p.Get(ProfitAfterTax))
}

func TestRuleKeysUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range append(ruleKeys(IncomeRules), ruleKeys(BalanceRules)...) {
		assert.False(t, seen[k], "duplicate rule %s", k)
		seen[k] = true
	}
	for _, c := range chart.DefaultCategories() {
		assert.False(t, seen[c.Key], "category %s collides with a derived line", c.Key)
	}
}

func TestRules_ReferenceEarlierTotals(t *testing.T) {
	for _, rules := range [][]Rule{IncomeRules, BalanceRules} {
		defined := make(map[string]bool)
		for _, r := range rules {
			for _, term := range r.Terms {
				if term.Total != "" {
					assert.True(t, defined[term.Total], "%s uses %s before it is computed", r.Key, term.Total)
				}
			}
			defined[r.Key] = true
		}
	}
}
