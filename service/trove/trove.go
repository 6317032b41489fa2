package trove

import (
	"context"

	"cash/core"
	"cash/pkg/fixedpoint"
	"cash/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

type troveService struct {
	db          *db.DB
	system      *core.System
	collaterals core.ICollateralService
	troves      core.ITroveStore
	stats       core.IStatStore
	providers   core.IProviderStore
	ledger      core.CustodyLedger
	oracle      core.IPriceOracleService
	fees        core.IFeeService
}

// New new trove lifecycle service
func New(
	db *db.DB,
	system *core.System,
	collaterals core.ICollateralService,
	troves core.ITroveStore,
	stats core.IStatStore,
	providers core.IProviderStore,
	ledger core.CustodyLedger,
	oracle core.IPriceOracleService,
	fees core.IFeeService,
) core.ITroveService {
	return &troveService{
		db:          db,
		system:      system,
		collaterals: collaterals,
		troves:      troves,
		stats:       stats,
		providers:   providers,
		ledger:      ledger,
		oracle:      oracle,
		fees:        fees,
	}
}

// Open opens a trove, locking collateral and minting the requested debt. The
// recorded debt additionally carries the borrow fee and the liquidation
// reserve. Returns the amount actually minted to the caller.
func (s *troveService) Open(ctx context.Context, userID, assetID string, collateralIn, debtRequested uint64) (uint64, error) {
	var minted uint64
	if err := s.db.Tx(func(tx *db.DB) error {
		var err error
		minted, err = s.open(ctx, tx, userID, assetID, collateralIn, debtRequested)
		return err
	}); err != nil {
		return 0, err
	}

	return minted, nil
}

func (s *troveService) open(ctx context.Context, tx *db.DB, userID, assetID string, collateralIn, debtRequested uint64) (uint64, error) {
	log := logger.FromContext(ctx).WithField("service", "trove")

	collateral, err := s.collaterals.Valid(ctx, assetID)
	if err != nil {
		return 0, err
	}
	if !collateral.OpenTroveAllowed {
		return 0, core.ErrOperationDisabled
	}
	if collateralIn == 0 {
		return 0, core.ErrInvalidAmount
	}
	if debtRequested < collateral.MinimumDebt {
		return 0, core.ErrBelowMinimumDebt
	}

	if trove, err := s.troves.Find(ctx, assetID, userID); err == nil && trove.Active {
		return 0, core.ErrPositionAlreadyExists
	} else if err != nil && err != core.ErrPositionNotFound {
		return 0, err
	}

	borrowFee, err := s.fees.BorrowFee(collateral, debtRequested)
	if err != nil {
		return 0, err
	}
	totalDebt, err := sumDebt(debtRequested, borrowFee, collateral.LiquidationReserve)
	if err != nil {
		return 0, err
	}

	price, err := s.oracle.GetPrice(ctx, collateral)
	if err != nil {
		return 0, err
	}
	value, err := fixedpoint.Value(collateralIn, price, collateral.Decimals)
	if err != nil {
		return 0, err
	}
	if err := fixedpoint.CheckRatio(value, totalDebt, collateral.MCR); err != nil {
		return 0, err
	}

	traceID := id.GenTraceID()
	if err := s.ledger.Transfer(ctx, tx, assetID, userID, core.LedgerAccountCustody, collateralIn, core.JournalReasonTroveOpened, traceID); err != nil {
		return 0, err
	}
	if err := s.ledger.Mint(ctx, tx, s.system.CashAssetID, userID, debtRequested, core.JournalReasonDebtMinted, traceID); err != nil {
		return 0, err
	}
	if err := s.ledger.Mint(ctx, tx, s.system.CashAssetID, core.LedgerAccountFee, borrowFee, core.JournalReasonDebtMinted, traceID); err != nil {
		return 0, err
	}
	if err := s.ledger.Mint(ctx, tx, s.system.CashAssetID, core.LedgerAccountReserve, collateral.LiquidationReserve, core.JournalReasonDebtMinted, traceID); err != nil {
		return 0, err
	}

	if err := s.troves.Save(ctx, tx, &core.Trove{
		AssetID:    assetID,
		UserID:     userID,
		Collateral: collateralIn,
		Debt:       totalDebt,
		Active:     true,
	}); err != nil {
		return 0, err
	}

	if err := s.addStats(ctx, tx, assetID, collateralIn, totalDebt); err != nil {
		return 0, err
	}

	// first-time owners become redemption providers; an owner who opted out
	// and reopens keeps the opt-out
	if err := s.providers.Init(ctx, tx, assetID, userID); err != nil {
		return 0, err
	}

	log.Infof("trove opened: %s/%s collateral %d debt %d", assetID, userID, collateralIn, totalDebt)
	return debtRequested, nil
}

// DepositOrMint adds collateral and/or mints additional debt against an
// active trove.
func (s *troveService) DepositOrMint(ctx context.Context, userID, assetID string, extraCollateral, extraDebt uint64) error {
	collateral, err := s.collaterals.Valid(ctx, assetID)
	if err != nil {
		return err
	}
	if extraDebt > 0 && !collateral.BorrowAllowed {
		return core.ErrOperationDisabled
	}
	if extraCollateral > 0 && !collateral.DepositAllowed {
		return core.ErrOperationDisabled
	}
	if extraCollateral == 0 && extraDebt == 0 {
		return core.ErrInvalidAmount
	}

	trove, err := s.troves.Find(ctx, assetID, userID)
	if err != nil {
		return err
	}
	if !trove.Active {
		return core.ErrPositionNotFound
	}

	borrowFee, err := s.fees.BorrowFee(collateral, extraDebt)
	if err != nil {
		return err
	}
	debtDelta, err := sumDebt(extraDebt, borrowFee, 0)
	if err != nil {
		return err
	}
	newDebt, err := fixedpoint.Add(trove.Debt, debtDelta)
	if err != nil {
		return err
	}
	newCollateral, err := fixedpoint.Add(trove.Collateral, extraCollateral)
	if err != nil {
		return err
	}

	price, err := s.oracle.GetPrice(ctx, collateral)
	if err != nil {
		return err
	}
	value, err := fixedpoint.Value(newCollateral, price, collateral.Decimals)
	if err != nil {
		return err
	}
	if err := fixedpoint.CheckRatio(value, newDebt, collateral.MCR); err != nil {
		return err
	}

	traceID := id.GenTraceID()
	return s.db.Tx(func(tx *db.DB) error {
		if extraCollateral > 0 {
			if err := s.ledger.Transfer(ctx, tx, assetID, userID, core.LedgerAccountCustody, extraCollateral, core.JournalReasonCollateralDeposit, traceID); err != nil {
				return err
			}
		}
		if extraDebt > 0 {
			if err := s.ledger.Mint(ctx, tx, s.system.CashAssetID, userID, extraDebt, core.JournalReasonDebtMinted, traceID); err != nil {
				return err
			}
			if err := s.ledger.Mint(ctx, tx, s.system.CashAssetID, core.LedgerAccountFee, borrowFee, core.JournalReasonDebtMinted, traceID); err != nil {
				return err
			}
		}

		trove.Collateral = newCollateral
		trove.Debt = newDebt
		if err := s.troves.Update(ctx, tx, trove); err != nil {
			return err
		}

		return s.addStats(ctx, tx, assetID, extraCollateral, debtDelta)
	})
}

// RepayOrWithdraw burns debt and/or releases collateral from an active trove.
// A nonzero residual debt must stay at or above the minimum-debt floor.
func (s *troveService) RepayOrWithdraw(ctx context.Context, userID, assetID string, withdrawAmount, repayAmount uint64) error {
	collateral, err := s.collaterals.Valid(ctx, assetID)
	if err != nil {
		return err
	}
	if withdrawAmount == 0 && repayAmount == 0 {
		return core.ErrInvalidAmount
	}

	trove, err := s.troves.Find(ctx, assetID, userID)
	if err != nil {
		return err
	}
	if !trove.Active {
		return core.ErrPositionNotFound
	}

	if repayAmount > trove.Debt {
		return core.ErrInvalidDebtAmount
	}
	newDebt := trove.Debt - repayAmount
	if newDebt != 0 && newDebt < collateral.DebtFloor() {
		return core.ErrBelowMinimumDebt
	}

	if withdrawAmount > trove.Collateral {
		return core.ErrInsufficientCollateral
	}
	newCollateral := trove.Collateral - withdrawAmount

	if newDebt > 0 {
		price, err := s.oracle.GetPrice(ctx, collateral)
		if err != nil {
			return err
		}
		value, err := fixedpoint.Value(newCollateral, price, collateral.Decimals)
		if err != nil {
			return err
		}
		if err := fixedpoint.CheckRatio(value, newDebt, collateral.MCR); err != nil {
			return err
		}
	}

	if repayAmount > 0 {
		balance, err := s.ledger.Balance(ctx, s.system.CashAssetID, userID)
		if err != nil {
			return err
		}
		if balance < repayAmount {
			return core.ErrInsufficientDebtBalance
		}
	}

	traceID := id.GenTraceID()
	return s.db.Tx(func(tx *db.DB) error {
		if repayAmount > 0 {
			if err := s.ledger.Burn(ctx, tx, s.system.CashAssetID, userID, repayAmount, core.JournalReasonDebtRepaid, traceID); err != nil {
				if err == core.ErrInsufficientBalance {
					return core.ErrInsufficientDebtBalance
				}
				return err
			}
		}
		if withdrawAmount > 0 {
			if err := s.ledger.Transfer(ctx, tx, assetID, core.LedgerAccountCustody, userID, withdrawAmount, core.JournalReasonCollateralWithdraw, traceID); err != nil {
				return err
			}
		}

		trove.Collateral = newCollateral
		trove.Debt = newDebt
		if err := s.troves.Update(ctx, tx, trove); err != nil {
			return err
		}

		return s.subStats(ctx, tx, assetID, withdrawAmount, repayAmount)
	})
}

// Close burns debt minus the liquidation reserve from the caller, burns the
// reserve from the reserve collector and refunds all collateral.
func (s *troveService) Close(ctx context.Context, userID, assetID string) error {
	collateral, err := s.collaterals.Valid(ctx, assetID)
	if err != nil {
		return err
	}

	trove, err := s.troves.Find(ctx, assetID, userID)
	if err != nil {
		return err
	}
	if !trove.Active {
		return core.ErrPositionNotFound
	}

	reserve := collateral.LiquidationReserve
	if reserve > trove.Debt {
		reserve = trove.Debt
	}
	owed := trove.Debt - reserve

	balance, err := s.ledger.Balance(ctx, s.system.CashAssetID, userID)
	if err != nil {
		return err
	}
	if balance < owed {
		return core.ErrInsufficientDebtBalance
	}

	traceID := id.GenTraceID()
	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.ledger.Burn(ctx, tx, s.system.CashAssetID, userID, owed, core.JournalReasonTroveClosed, traceID); err != nil {
			if err == core.ErrInsufficientBalance {
				return core.ErrInsufficientDebtBalance
			}
			return err
		}
		if err := s.ledger.Burn(ctx, tx, s.system.CashAssetID, core.LedgerAccountReserve, reserve, core.JournalReasonTroveClosed, traceID); err != nil {
			return err
		}
		if err := s.ledger.Transfer(ctx, tx, assetID, core.LedgerAccountCustody, userID, trove.Collateral, core.JournalReasonTroveClosed, traceID); err != nil {
			return err
		}

		if err := s.subStats(ctx, tx, assetID, trove.Collateral, trove.Debt); err != nil {
			return err
		}

		trove.Collateral = 0
		trove.Debt = 0
		trove.Active = false
		return s.troves.Update(ctx, tx, trove)
	}); err != nil {
		return err
	}

	logger.FromContext(ctx).
		WithField("service", "trove").
		Infof("trove closed: %s/%s", assetID, userID)
	return nil
}

func (s *troveService) addStats(ctx context.Context, tx *db.DB, assetID string, collateral, debt uint64) error {
	stat, err := s.stats.Find(ctx, assetID)
	if err != nil {
		return err
	}

	if stat.TotalCollateral, err = fixedpoint.Add(stat.TotalCollateral, collateral); err != nil {
		return err
	}
	if stat.TotalDebt, err = fixedpoint.Add(stat.TotalDebt, debt); err != nil {
		return err
	}

	return s.stats.Update(ctx, tx, stat)
}

func (s *troveService) subStats(ctx context.Context, tx *db.DB, assetID string, collateral, debt uint64) error {
	stat, err := s.stats.Find(ctx, assetID)
	if err != nil {
		return err
	}

	if stat.TotalCollateral < collateral || stat.TotalDebt < debt {
		return core.ErrInvalidAmount
	}
	stat.TotalCollateral -= collateral
	stat.TotalDebt -= debt

	return s.stats.Update(ctx, tx, stat)
}

func sumDebt(debt, fee, reserve uint64) (uint64, error) {
	total, err := fixedpoint.Add(debt, fee)
	if err != nil {
		return 0, err
	}
	return fixedpoint.Add(total, reserve)
}
