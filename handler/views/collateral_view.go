package views

import (
	"cash/core"

	"github.com/shopspring/decimal"
)

// Collateral collateral config view with the latest quote attached
type Collateral struct {
	core.Collateral
	Price  decimal.Decimal      `json:"price"`
	Status core.OperationStatus `json:"status"`
}

// RatioPreview preview of a hypothetical position at the latest price
type RatioPreview struct {
	Collateral decimal.Decimal `json:"collateral"`
	Debt       decimal.Decimal `json:"debt"`
	Value      decimal.Decimal `json:"value"`
	Ratio      uint64          `json:"ratio"`
	// true when the ratio clears the minimum collateral ratio
	Sufficient bool `json:"sufficient"`
}
