package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Trove a single user's collateralized debt position for one collateral type.
// Debt includes the borrow fee and the liquidation reserve added at mint time.
type Trove struct {
	ID         uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID    string `sql:"size:36;unique_index:idx_troves_asset_user" json:"asset_id"`
	UserID     string `sql:"size:36;unique_index:idx_troves_asset_user" json:"user_id"`
	Collateral uint64 `json:"collateral"`
	Debt       uint64 `json:"debt"`
	Active     bool   `sql:"default:0" json:"active"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ITroveStore trove store interface
type ITroveStore interface {
	Save(ctx context.Context, tx *db.DB, trove *Trove) error
	Find(ctx context.Context, assetID, userID string) (*Trove, error)
	FindByAsset(ctx context.Context, assetID string) ([]*Trove, error)
	CountActive(ctx context.Context, assetID string) (int64, error)
	Update(ctx context.Context, tx *db.DB, trove *Trove) error
}

// ITroveService trove lifecycle interface
type ITroveService interface {
	Open(ctx context.Context, userID, assetID string, collateralIn, debtRequested uint64) (uint64, error)
	DepositOrMint(ctx context.Context, userID, assetID string, extraCollateral, extraDebt uint64) error
	RepayOrWithdraw(ctx context.Context, userID, assetID string, withdrawAmount, repayAmount uint64) error
	Close(ctx context.Context, userID, assetID string) error
}

// LiquidationOutcome collateral distribution of one liquidation.
type LiquidationOutcome struct {
	DebtRepaid         uint64 `json:"debt_repaid"`
	CollateralSeized   uint64 `json:"collateral_seized"`
	LiquidatorReceived uint64 `json:"liquidator_received"`
	ProtocolFee        uint64 `json:"protocol_fee"`
	OwnerRefund        uint64 `json:"owner_refund"`
	ReserveReleased    uint64 `json:"reserve_released"`
	Closed             bool   `json:"closed"`
}

// ILiquidationService liquidation engine interface
type ILiquidationService interface {
	Liquidate(ctx context.Context, liquidator, assetID, owner string) (*LiquidationOutcome, error)
	PartialLiquidate(ctx context.Context, liquidator, assetID, owner string, requestedDebt uint64) (*LiquidationOutcome, error)
}

// RedemptionOutcome result of a single redemption.
type RedemptionOutcome struct {
	DebtRedeemed  uint64 `json:"debt_redeemed"`
	CollateralOut uint64 `json:"collateral_out"`
	Fee           uint64 `json:"fee"`
	Gratuity      uint64 `json:"gratuity"`
	Closed        bool   `json:"closed"`
}

// IRedemptionService redemption engine interface
type IRedemptionService interface {
	Redeem(ctx context.Context, redeemer, assetID, provider string, cashAmount, minCollateralOut uint64) (*RedemptionOutcome, error)
	RedeemMultiple(ctx context.Context, redeemer, assetID string, providers []string, amounts, minCollateralOuts []uint64) ([]*RedemptionOutcome, error)
}
