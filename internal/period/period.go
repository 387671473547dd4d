package period

import (
	"fmt"
	"strconv"
	"strings"
)

// Opening is the month number of the opening balance snapshot.
const Opening = 0

var (
	shortNames = [...]string{"Jan", "Feb", "Mar", "Apr", "Máj", "Jún", "Júl", "Aug", "Sep", "Okt", "Nov", "Dec"}
	fullNames  = [...]string{"Január", "Február", "Marec", "Apríl", "Máj", "Jún", "Júl", "August", "September", "Október", "November", "December"}
)

// Format returns a period ID like "2025-03". Month 0 is the opening snapshot.
func Format(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// Parse parses "2025-03" into year and month (0-12).
func Parse(id string) (year, month int, err error) {
	parts := strings.SplitN(id, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid period format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in period %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in period %q: %w", id, err)
	}
	if month < Opening || month > 12 {
		return 0, 0, fmt.Errorf("month %d out of range in period %q", month, id)
	}

	return year, month, nil
}

// MonthName returns the short Slovak label of month 1-12. Month 0 is "PS"
// (počiatočný stav, the opening balance).
func MonthName(month int) string {
	switch {
	case month == Opening:
		return "PS"
	case month >= 1 && month <= 12:
		return shortNames[month-1]
	}
	return strconv.Itoa(month)
}

// MonthFullName returns the full Slovak name of month 1-12.
func MonthFullName(month int) string {
	if month >= 1 && month <= 12 {
		return fullNames[month-1]
	}
	return MonthName(month)
}

// Range returns the period IDs of months from..to of a year, inclusive.
func Range(year, from, to int) []string {
	if to < from {
		return nil
	}
	ids := make([]string, 0, to-from+1)
	for m := from; m <= to; m++ {
		ids = append(ids, Format(year, m))
	}
	return ids
}
