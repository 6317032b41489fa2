package collateral

import (
	"context"

	"cash/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type collateralStore struct {
	db *db.DB
}

// New new collateral store
func New(db *db.DB) core.ICollateralStore {
	return &collateralStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Collateral{})
		if err := tx.AutoMigrate(core.Collateral{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *collateralStore) Create(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	return tx.Update().Create(collateral).Error
}

func (s *collateralStore) Find(ctx context.Context, assetID string) (*core.Collateral, error) {
	var collateral core.Collateral
	if err := s.db.View().Where("asset_id = ?", assetID).First(&collateral).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrUnsupportedCollateral
		}
		return nil, err
	}

	return &collateral, nil
}

func (s *collateralStore) All(ctx context.Context) ([]*core.Collateral, error) {
	var collaterals []*core.Collateral
	if err := s.db.View().Find(&collaterals).Error; err != nil {
		return nil, err
	}
	return collaterals, nil
}

// mutableColumns lists every column set_config and set_operation_status may
// touch. A struct-based gorm update skips zero values, which would make it
// impossible to turn a gate off or zero a rate.
func mutableColumns(collateral *core.Collateral) map[string]interface{} {
	return map[string]interface{}{
		"minimum_debt":             collateral.MinimumDebt,
		"mcr":                      collateral.MCR,
		"borrow_rate":              collateral.BorrowRate,
		"liquidation_reserve":      collateral.LiquidationReserve,
		"liquidation_threshold":    collateral.LiquidationThreshold,
		"liquidation_penalty":      collateral.LiquidationPenalty,
		"liquidation_fee_protocol": collateral.LiquidationFeeProtocol,
		"redemption_fee":           collateral.RedemptionFee,
		"redemption_fee_gratuity":  collateral.RedemptionFeeGratuity,
		"oracle_id":                collateral.OracleID,
		"max_price_age":            collateral.MaxPriceAge,
		"enabled":                  collateral.Enabled,
		"open_trove_allowed":       collateral.OpenTroveAllowed,
		"borrow_allowed":           collateral.BorrowAllowed,
		"deposit_allowed":          collateral.DepositAllowed,
		"redeem_allowed":           collateral.RedeemAllowed,
		"version":                  collateral.Version,
	}
}

func (s *collateralStore) Update(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	version := collateral.Version
	collateral.Version++

	update := tx.Update().Model(core.Collateral{}).
		Where("asset_id = ? and version = ?", collateral.AssetID, version).
		Updates(mutableColumns(collateral))
	if update.Error != nil {
		return update.Error
	}
	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
