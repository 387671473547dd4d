package model

import "github.com/shopspring/decimal"

// Nature says how an account's figures enter the financial statements.
type Nature string

const (
	NatureAsset     Nature = "asset"
	NatureLiability Nature = "liability"
	NatureCost      Nature = "cost"
	NatureRevenue   Nature = "revenue"
	NatureDualSign  Nature = "dual_sign"
	NatureClosing   Nature = "closing" // recognized, never reported
)

// Valid reports whether n is one of the known natures.
func (n Nature) Valid() bool {
	switch n {
	case NatureAsset, NatureLiability, NatureCost, NatureRevenue, NatureDualSign, NatureClosing:
		return true
	}
	return false
}

// Classification is the statement mapping for an account-code prefix.
//
// Single classifications (every nature except dual_sign) use Category.
// Dual classifications use AssetCategory and LiabilityCategory; which one
// receives a figure depends on the sign of the figure itself (see Route).
type Classification struct {
	Nature            Nature
	Name              string
	Category          string
	AssetCategory     string
	LiabilityCategory string
	Taxable           bool
}

// Single returns a classification with one target category.
func Single(nature Nature, category string) Classification {
	return Classification{Nature: nature, Category: category}
}

// Dual returns a dual-sign classification.
func Dual(assetCategory, liabilityCategory string) Classification {
	return Classification{
		Nature:            NatureDualSign,
		AssetCategory:     assetCategory,
		LiabilityCategory: liabilityCategory,
	}
}

// IsDual reports whether the classification routes by sign.
func (c Classification) IsDual() bool {
	return c.Nature == NatureDualSign
}

// Route picks the category for a dual-sign balance. A positive balance is a
// debit (asset) position; zero and negative balances go to the liability side.
func (c Classification) Route(balance decimal.Decimal) (category string, asset bool) {
	if balance.IsPositive() {
		return c.AssetCategory, true
	}
	return c.LiabilityCategory, false
}

// Categories returns every category the classification can write to.
func (c Classification) Categories() []string {
	if c.IsDual() {
		return []string{c.AssetCategory, c.LiabilityCategory}
	}
	if c.Category == "" {
		return nil
	}
	return []string{c.Category}
}
