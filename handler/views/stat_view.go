package views

import (
	"cash/core"

	"github.com/shopspring/decimal"
)

// Stat total stat view
type Stat struct {
	core.TotalStat
	TotalCollateralAmount decimal.Decimal `json:"total_collateral_amount"`
	TotalDebtAmount       decimal.Decimal `json:"total_debt_amount"`
	ActiveTroves          int64           `json:"active_troves"`
}

// StatCheck recorded totals against a fresh sum over the active troves.
type StatCheck struct {
	AssetID            string `json:"asset_id"`
	RecordedCollateral uint64 `json:"recorded_collateral"`
	RecordedDebt       uint64 `json:"recorded_debt"`
	ComputedCollateral uint64 `json:"computed_collateral"`
	ComputedDebt       uint64 `json:"computed_debt"`
	ActiveTroves       int64  `json:"active_troves"`
	Consistent         bool   `json:"consistent"`
}

// Balance custody ledger balance view
type Balance struct {
	AssetID string          `json:"asset_id"`
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}
