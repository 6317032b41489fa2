package collateral

import (
	"context"
	"time"

	"cash/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

type collateralService struct {
	db     *db.DB
	system *core.System
	store  core.ICollateralStore
	ledger core.CustodyLedger
	cache  gcache.Cache
}

// New new collateral registry service
func New(db *db.DB, system *core.System, store core.ICollateralStore, ledger core.CustodyLedger) core.ICollateralService {
	return &collateralService{
		db:     db,
		system: system,
		store:  store,
		ledger: ledger,
		cache:  gcache.New(64).LRU().Expiration(time.Minute).Build(),
	}
}

func (s *collateralService) AddCollateral(ctx context.Context, admin string, collateral *core.Collateral) error {
	if !s.system.IsAdmin(admin) {
		return core.ErrNotAdmin
	}

	if s.system.CashAssetID == "" {
		return core.ErrNotSetup
	}
	if ok, err := s.ledger.HasToken(ctx, s.system.CashAssetID); err != nil {
		return err
	} else if !ok {
		return core.ErrNotSetup
	}

	// the collateral token must be registered on the ledger first
	if ok, err := s.ledger.HasToken(ctx, collateral.AssetID); err != nil {
		return err
	} else if !ok {
		return core.ErrCoinNotInitialized
	}

	if _, err := s.store.Find(ctx, collateral.AssetID); err == nil {
		return core.ErrCollateralExists
	} else if err != core.ErrUnsupportedCollateral {
		return err
	}

	if collateral.LiquidationThreshold > collateral.MCR {
		return core.ErrInvalidAmount
	}

	collateral.Enabled = true
	if err := s.db.Tx(func(tx *db.DB) error {
		return s.store.Create(ctx, tx, collateral)
	}); err != nil {
		return err
	}

	logger.FromContext(ctx).
		WithField("service", "collateral").
		Infof("collateral %s added by %s", collateral.AssetID, admin)

	return nil
}

func (s *collateralService) SetConfig(ctx context.Context, admin, assetID string, update core.CollateralUpdate) error {
	if !s.system.IsAdmin(admin) {
		return core.ErrNotAdmin
	}

	collateral, err := s.store.Find(ctx, assetID)
	if err != nil {
		return err
	}

	applyUpdate(collateral, update)
	if collateral.LiquidationThreshold > collateral.MCR {
		return core.ErrInvalidAmount
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		return s.store.Update(ctx, tx, collateral)
	}); err != nil {
		return err
	}

	s.cache.Remove(assetID)
	return nil
}

func (s *collateralService) SetOperationStatus(ctx context.Context, admin, assetID string, status core.OperationStatus) error {
	if !s.system.IsAdmin(admin) {
		return core.ErrNotAdmin
	}

	collateral, err := s.store.Find(ctx, assetID)
	if err != nil {
		return err
	}

	collateral.OpenTroveAllowed = status.OpenTrove
	collateral.BorrowAllowed = status.Borrow
	collateral.DepositAllowed = status.Deposit
	collateral.RedeemAllowed = status.Redeem

	if err := s.db.Tx(func(tx *db.DB) error {
		return s.store.Update(ctx, tx, collateral)
	}); err != nil {
		return err
	}

	s.cache.Remove(assetID)
	return nil
}

func (s *collateralService) Valid(ctx context.Context, assetID string) (*core.Collateral, error) {
	if v, err := s.cache.Get(assetID); err == nil {
		collateral := v.(*core.Collateral)
		if !collateral.Enabled {
			return nil, core.ErrUnsupportedCollateral
		}
		return collateral, nil
	}

	collateral, err := s.store.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(assetID, collateral)

	if !collateral.Enabled {
		return nil, core.ErrUnsupportedCollateral
	}

	return collateral, nil
}

func (s *collateralService) Find(ctx context.Context, assetID string) (*core.Collateral, error) {
	return s.store.Find(ctx, assetID)
}

func applyUpdate(c *core.Collateral, u core.CollateralUpdate) {
	if u.MinimumDebt != nil {
		c.MinimumDebt = *u.MinimumDebt
	}
	if u.MCR != nil {
		c.MCR = *u.MCR
	}
	if u.BorrowRate != nil {
		c.BorrowRate = *u.BorrowRate
	}
	if u.LiquidationReserve != nil {
		c.LiquidationReserve = *u.LiquidationReserve
	}
	if u.LiquidationThreshold != nil {
		c.LiquidationThreshold = *u.LiquidationThreshold
	}
	if u.LiquidationPenalty != nil {
		c.LiquidationPenalty = *u.LiquidationPenalty
	}
	if u.LiquidationFeeProtocol != nil {
		c.LiquidationFeeProtocol = *u.LiquidationFeeProtocol
	}
	if u.RedemptionFee != nil {
		c.RedemptionFee = *u.RedemptionFee
	}
	if u.RedemptionFeeGratuity != nil {
		c.RedemptionFeeGratuity = *u.RedemptionFeeGratuity
	}
	if u.OracleID != nil {
		c.OracleID = *u.OracleID
	}
	if u.MaxPriceAge != nil {
		c.MaxPriceAge = *u.MaxPriceAge
	}
	if u.Enabled != nil {
		c.Enabled = *u.Enabled
	}
}
