package amount

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// epsilon nudges values sitting just under a half-cent boundary, matching
	// the float reference the reports were originally computed with.
	epsilon = decimal.New(1, -9)
	half    = decimal.New(5, -1)
)

// Parse converts a loosely typed feed value into a decimal. Numbers,
// json.Number and strings with either ',' or '.' as the decimal separator are
// accepted. Anything else, including unparseable strings and values a float64
// cannot hold (NaN, ±Inf, 1e400), is zero.
func Parse(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case json.Number:
		return parseString(x.String())
	case string:
		return parseString(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat32(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case int32:
		return decimal.NewFromInt32(x)
	}
	return decimal.Zero
}

func parseString(s string) decimal.Decimal {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero
	}

	comma := strings.LastIndexByte(s, ',')
	dot := strings.LastIndexByte(s, '.')
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		// "1.234,56": dots group thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		// "1,234.56": commas group thousands.
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	// Periods are published as JSON numbers.
	if f := d.InexactFloat64(); math.IsInf(f, 0) {
		return decimal.Zero
	}
	return d
}

// Round rounds to cents: floor((x + 1e-9) * 100 + 0.5) / 100.
//
// Halves round towards positive infinity, so Round(10.005) is 10.01 while
// Round(-10.005) is -10.00.
func Round(x decimal.Decimal) decimal.Decimal {
	return x.Add(epsilon).Shift(2).Add(half).Floor().Shift(-2)
}
