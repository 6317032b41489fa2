package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Collateral per-collateral-type configuration. Rates are basis points,
// amounts are base units of the respective token.
type Collateral struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:idx_collaterals_asset" json:"asset_id"`
	Symbol  string `sql:"size:20" json:"symbol"`
	// native precision of the collateral token
	Decimals int32 `sql:"default:8" json:"decimals"`
	// minimum debt requested when opening or left behind when repaying
	MinimumDebt uint64 `json:"minimum_debt"`
	// minimum collateral ratio, e.g. 12500 = 125%
	MCR uint64 `json:"mcr"`
	// one-off fee charged on every mint
	BorrowRate uint64 `json:"borrow_rate"`
	// fixed debt-token amount held back at mint for the liquidator
	LiquidationReserve uint64 `json:"liquidation_reserve"`
	// ICR at or below which a trove becomes liquidatable, <= MCR
	LiquidationThreshold uint64 `json:"liquidation_threshold"`
	LiquidationPenalty   uint64 `json:"liquidation_penalty"`
	// share of the liquidation penalty routed to the fee collector
	LiquidationFeeProtocol uint64 `json:"liquidation_fee_protocol"`
	RedemptionFee          uint64 `json:"redemption_fee"`
	RedemptionFeeGratuity  uint64 `json:"redemption_fee_gratuity"`
	OracleID               string `sql:"size:36" json:"oracle_id"`
	// seconds; older prices are rejected
	MaxPriceAge int64 `json:"max_price_age"`
	Enabled     bool  `sql:"default:1" json:"enabled"`

	// per-operation gates, orthogonal to Enabled
	OpenTroveAllowed bool `sql:"default:1" json:"open_trove_allowed"`
	BorrowAllowed    bool `sql:"default:1" json:"borrow_allowed"`
	DepositAllowed   bool `sql:"default:1" json:"deposit_allowed"`
	RedeemAllowed    bool `sql:"default:1" json:"redeem_allowed"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DebtFloor minimum debt a surviving trove must keep, reserve included.
func (c *Collateral) DebtFloor() uint64 {
	return c.MinimumDebt + c.LiquidationReserve
}

// OperationStatus the four per-collateral operation gates.
type OperationStatus struct {
	OpenTrove bool `json:"open_trove"`
	Borrow    bool `json:"borrow"`
	Deposit   bool `json:"deposit"`
	Redeem    bool `json:"redeem"`
}

// Status snapshot of the operation gates.
func (c *Collateral) Status() OperationStatus {
	return OperationStatus{
		OpenTrove: c.OpenTroveAllowed,
		Borrow:    c.BorrowAllowed,
		Deposit:   c.DepositAllowed,
		Redeem:    c.RedeemAllowed,
	}
}

// CollateralUpdate partial config mutation applied by set_config. Nil fields
// keep the stored value.
type CollateralUpdate struct {
	MinimumDebt            *uint64 `json:"minimum_debt,omitempty"`
	MCR                    *uint64 `json:"mcr,omitempty"`
	BorrowRate             *uint64 `json:"borrow_rate,omitempty"`
	LiquidationReserve     *uint64 `json:"liquidation_reserve,omitempty"`
	LiquidationThreshold   *uint64 `json:"liquidation_threshold,omitempty"`
	LiquidationPenalty     *uint64 `json:"liquidation_penalty,omitempty"`
	LiquidationFeeProtocol *uint64 `json:"liquidation_fee_protocol,omitempty"`
	RedemptionFee          *uint64 `json:"redemption_fee,omitempty"`
	RedemptionFeeGratuity  *uint64 `json:"redemption_fee_gratuity,omitempty"`
	OracleID               *string `json:"oracle_id,omitempty"`
	MaxPriceAge            *int64  `json:"max_price_age,omitempty"`
	Enabled                *bool   `json:"enabled,omitempty"`
}

// ICollateralStore collateral config store interface
type ICollateralStore interface {
	Create(ctx context.Context, tx *db.DB, collateral *Collateral) error
	Find(ctx context.Context, assetID string) (*Collateral, error)
	All(ctx context.Context) ([]*Collateral, error)
	Update(ctx context.Context, tx *db.DB, collateral *Collateral) error
}

// ICollateralService collateral registry interface
type ICollateralService interface {
	AddCollateral(ctx context.Context, admin string, collateral *Collateral) error
	SetConfig(ctx context.Context, admin, assetID string, update CollateralUpdate) error
	SetOperationStatus(ctx context.Context, admin, assetID string, status OperationStatus) error
	// Valid returns the config if the collateral was added and is enabled
	Valid(ctx context.Context, assetID string) (*Collateral, error)
	Find(ctx context.Context, assetID string) (*Collateral, error)
}
