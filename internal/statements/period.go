package statements

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// monthKey is the JSON field carrying a period's index.
const monthKey = "month"

// Period is one month of the income statement or one balance-sheet snapshot:
// line-item key to amount. Month is 1-12 for income periods and 0-12 for
// balance snapshots, 0 being the opening balance.
type Period struct {
	Month  int
	Values map[string]decimal.Decimal
}

func newPeriod(month int, keys []string) Period {
	p := Period{Month: month, Values: make(map[string]decimal.Decimal, len(keys))}
	for _, k := range keys {
		p.Values[k] = decimal.Zero
	}
	return p
}

// Get returns the amount for key, zero when absent.
func (p Period) Get(key string) decimal.Decimal {
	return p.Values[key]
}

func (p Period) add(key string, d decimal.Decimal) {
	p.Values[key] = p.Values[key].Add(d)
}

// Keys returns the line-item keys in sorted order.
func (p Period) Keys() []string {
	keys := make([]string, 0, len(p.Values))
	for k := range p.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p Period) clone() Period {
	out := Period{Month: p.Month, Values: make(map[string]decimal.Decimal, len(p.Values))}
	for k, v := range p.Values {
		out.Values[k] = v
	}
	return out
}

// MarshalJSON writes the period as a flat object: {"month": n, "<key>": amount}.
func (p Period) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(p.Values)+1)
	for k, v := range p.Values {
		flat[k] = v.InexactFloat64()
	}
	flat[monthKey] = p.Month
	return json.Marshal(flat)
}

// UnmarshalJSON reads the flat form written by MarshalJSON.
func (p *Period) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var flat map[string]json.Number
	if err := dec.Decode(&flat); err != nil {
		return fmt.Errorf("decoding period: %w", err)
	}

	out := Period{Values: make(map[string]decimal.Decimal, len(flat))}
	for k, n := range flat {
		if k == monthKey {
			m, err := n.Int64()
			if err != nil {
				return fmt.Errorf("parsing month %q: %w", n, err)
			}
			out.Month = int(m)
			continue
		}
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", k, n, err)
		}
		out.Values[k] = d
	}
	*p = out
	return nil
}
