package chart

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/flexidash/flexidash/internal/model"
)

// MaxPrefixLen is the longest account-code prefix a table can key on.
const MaxPrefixLen = 3

// Entry maps an account-code prefix to its classification.
type Entry struct {
	Prefix         string
	Classification model.Classification
}

// Table resolves account codes to classifications. A Table never changes
// after NewTable returns, so one instance can serve concurrent aggregations.
type Table struct {
	byPrefix   map[string]model.Classification
	categories []Category
	byKey      map[string]Category
}

// NewTable validates entries against the category registry and builds a
// Table.
func NewTable(entries []Entry, categories []Category) (*Table, error) {
	t := &Table{
		byPrefix:   make(map[string]model.Classification, len(entries)),
		categories: make([]Category, 0, len(categories)),
		byKey:      make(map[string]Category, len(categories)),
	}

	for _, c := range categories {
		if c.Key == "" {
			return nil, errors.New("category with empty key")
		}
		if _, dup := t.byKey[c.Key]; dup {
			return nil, fmt.Errorf("duplicate category %q", c.Key)
		}
		t.byKey[c.Key] = c
		t.categories = append(t.categories, c)
	}

	for _, e := range entries {
		if err := t.validate(e); err != nil {
			return nil, fmt.Errorf("prefix %q: %w", e.Prefix, err)
		}
		if _, dup := t.byPrefix[e.Prefix]; dup {
			return nil, fmt.Errorf("duplicate prefix %q", e.Prefix)
		}
		t.byPrefix[e.Prefix] = e.Classification
	}
	return t, nil
}

func (t *Table) validate(e Entry) error {
	if n := len(e.Prefix); n == 0 || n > MaxPrefixLen {
		return fmt.Errorf("prefix must be 1 to %d characters", MaxPrefixLen)
	}
	c := e.Classification
	switch c.Nature {
	case model.NatureClosing:
		return nil
	case model.NatureDualSign:
		if c.AssetCategory == "" || c.LiabilityCategory == "" {
			return errors.New("dual-sign entry needs both asset and liability categories")
		}
		if err := t.checkCategory(c.AssetCategory, StatementBalance); err != nil {
			return err
		}
		return t.checkCategory(c.LiabilityCategory, StatementBalance)
	case model.NatureAsset, model.NatureLiability:
		return t.checkCategory(c.Category, StatementBalance)
	case model.NatureCost, model.NatureRevenue:
		return t.checkCategory(c.Category, StatementIncome)
	}
	return fmt.Errorf("unknown nature %q", c.Nature)
}

func (t *Table) checkCategory(key string, want Statement) error {
	cat, ok := t.byKey[key]
	if !ok {
		return fmt.Errorf("unknown category %q", key)
	}
	if got := cat.Group.Statement(); got != want {
		return fmt.Errorf("category %q is on the %s statement, not %s", key, got, want)
	}
	return nil
}

// NormalizeCode strips an AbraFlexi scheme prefix ("code:") and surrounding
// whitespace from an account code.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if _, after, found := strings.Cut(code, ":"); found {
		code = after
	}
	return strings.TrimSpace(code)
}

// Classify resolves an account code by longest-prefix match over 3-, 2- and
// 1-character keys. Unmapped or empty codes report false.
func (t *Table) Classify(code string) (model.Classification, bool) {
	code = NormalizeCode(code)
	for n := MaxPrefixLen; n >= 1; n-- {
		if len(code) < n {
			continue
		}
		if c, ok := t.byPrefix[code[:n]]; ok {
			return c, true
		}
	}
	return model.Classification{}, false
}

// Category returns the registered category for key.
func (t *Table) Category(key string) (Category, bool) {
	c, ok := t.byKey[key]
	return c, ok
}

// Categories returns the categories reported on a statement, in registry
// order.
func (t *Table) Categories(s Statement) []Category {
	var out []Category
	for _, c := range t.categories {
		if c.Group.Statement() == s {
			out = append(out, c)
		}
	}
	return out
}

// Entries returns all prefix mappings sorted by prefix.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.byPrefix))
	for p, c := range t.byPrefix {
		out = append(out, Entry{Prefix: p, Classification: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// Len returns the number of prefix mappings.
func (t *Table) Len() int {
	return len(t.byPrefix)
}
