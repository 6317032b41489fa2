package views

import (
	"cash/core"

	"github.com/shopspring/decimal"
)

// Trove trove view
type Trove struct {
	core.Trove
	CollateralAmount decimal.Decimal `json:"collateral_amount"`
	DebtAmount       decimal.Decimal `json:"debt_amount"`
	// collateral ratio in basis points at the latest price, 0 when no quote
	Ratio uint64 `json:"ratio"`
}
