package redemption

import (
	"context"

	"cash/core"
	"cash/pkg/fixedpoint"
	"cash/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

type redemptionService struct {
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

// New new redemption service
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
) core.IRedemptionService {
	return &redemptionService{
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

// Redeem swaps CASH for a provider's collateral at face value. The amount is
// clamped so the provider's residual debt is zero (reserve only, closing the
// trove) or stays at or above the minimum-debt floor.
func (s *redemptionService) Redeem(ctx context.Context, redeemer, assetID, provider string, cashAmount, minCollateralOut uint64) (*core.RedemptionOutcome, error) {
	var outcome *core.RedemptionOutcome
	if err := s.db.Tx(func(tx *db.DB) error {
		var err error
		outcome, err = s.redeem(ctx, tx, redeemer, assetID, provider, cashAmount, minCollateralOut, id.GenTraceID())
		return err
	}); err != nil {
		return nil, err
	}

	return outcome, nil
}

// RedeemMultiple redeems against several providers in one transaction; any
// failure aborts the whole batch.
func (s *redemptionService) RedeemMultiple(ctx context.Context, redeemer, assetID string, providers []string, amounts, minCollateralOuts []uint64) ([]*core.RedemptionOutcome, error) {
	if len(providers) != len(amounts) || len(providers) != len(minCollateralOuts) {
		return nil, core.ErrInvalidArrayLength
	}

	// one derived trace per leg so the whole batch journals together
	batchTrace := id.GenTraceID()

	outcomes := make([]*core.RedemptionOutcome, 0, len(providers))
	if err := s.db.Tx(func(tx *db.DB) error {
		for i, provider := range providers {
			outcome, err := s.redeem(ctx, tx, redeemer, assetID, provider, amounts[i], minCollateralOuts[i], id.Modify(batchTrace, provider))
			if err != nil {
				return err
			}
			outcomes = append(outcomes, outcome)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return outcomes, nil
}

func (s *redemptionService) redeem(ctx context.Context, tx *db.DB, redeemer, assetID, provider string, cashAmount, minCollateralOut uint64, traceID string) (*core.RedemptionOutcome, error) {
	collateral, err := s.collaterals.Valid(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if !collateral.RedeemAllowed {
		return nil, core.ErrOperationDisabled
	}

	enabled, err := s.providers.Enabled(ctx, assetID, provider)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, core.ErrNotRedemptionProvider
	}

	trove, err := s.troves.Find(ctx, assetID, provider)
	if err != nil {
		return nil, err
	}
	if !trove.Active || trove.Debt == 0 {
		return nil, core.ErrPositionNotFound
	}
	if cashAmount == 0 {
		return nil, core.ErrInvalidDebtAmount
	}

	reserve := collateral.LiquidationReserve
	if reserve > trove.Debt {
		reserve = trove.Debt
	}
	maxRedeem := trove.Debt - reserve
	if maxRedeem == 0 {
		return nil, core.ErrInvalidDebtAmount
	}

	// clamp to keep the residual debt valid
	actual := cashAmount
	if actual >= maxRedeem {
		actual = maxRedeem
	} else if residual := trove.Debt - actual; residual < collateral.DebtFloor() {
		if trove.Debt <= collateral.DebtFloor() {
			return nil, core.ErrInvalidDebtAmount
		}
		actual = trove.Debt - collateral.DebtFloor()
	}

	price, err := s.oracle.GetPrice(ctx, collateral)
	if err != nil {
		return nil, err
	}
	redeemed, err := fixedpoint.FromValue(actual, price, collateral.Decimals)
	if err != nil {
		return nil, err
	}
	if redeemed > trove.Collateral {
		redeemed = trove.Collateral
	}

	fee, gratuity, net := s.fees.RedemptionFees(collateral, redeemed)
	if net < minCollateralOut {
		return nil, core.ErrExcessiveSlippage
	}

	closed := actual == maxRedeem

	if err := s.ledger.Burn(ctx, tx, s.system.CashAssetID, redeemer, actual, core.JournalReasonRedemption, traceID); err != nil {
		if err == core.ErrInsufficientBalance {
			return nil, core.ErrInsufficientDebtBalance
		}
		return nil, err
	}
	if err := s.ledger.Transfer(ctx, tx, assetID, core.LedgerAccountCustody, redeemer, net, core.JournalReasonRedemption, traceID); err != nil {
		return nil, err
	}
	if err := s.ledger.Transfer(ctx, tx, assetID, core.LedgerAccountCustody, core.LedgerAccountFee, fee, core.JournalReasonRedemption, traceID); err != nil {
		return nil, err
	}
	if err := s.ledger.Transfer(ctx, tx, assetID, core.LedgerAccountCustody, core.LedgerAccountGratuity, gratuity, core.JournalReasonRedemption, traceID); err != nil {
		return nil, err
	}

	remainder := trove.Collateral - redeemed
	if closed {
		// residual is reserve only: burn the reserve, return the rest of
		// the collateral and close the trove
		if err := s.ledger.Burn(ctx, tx, s.system.CashAssetID, core.LedgerAccountReserve, reserve, core.JournalReasonRedemption, traceID); err != nil {
			return nil, err
		}
		if err := s.ledger.Transfer(ctx, tx, assetID, core.LedgerAccountCustody, provider, remainder, core.JournalReasonRedemption, traceID); err != nil {
			return nil, err
		}

		if err := s.subStats(ctx, tx, assetID, trove.Collateral, trove.Debt); err != nil {
			return nil, err
		}

		trove.Collateral = 0
		trove.Debt = 0
		trove.Active = false
	} else {
		if err := s.subStats(ctx, tx, assetID, redeemed, actual); err != nil {
			return nil, err
		}

		trove.Collateral = remainder
		trove.Debt -= actual
	}

	if err := s.troves.Update(ctx, tx, trove); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).
		WithField("service", "redemption").
		Infof("redeemed %d against %s/%s: out %d closed %v", actual, assetID, provider, net, closed)

	return &core.RedemptionOutcome{
		DebtRedeemed:  actual,
		CollateralOut: net,
		Fee:           fee,
		Gratuity:      gratuity,
		Closed:        closed,
	}, nil
}

func (s *redemptionService) subStats(ctx context.Context, tx *db.DB, assetID string, collateral, debt uint64) error {
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
