package liquidation

import (
	"context"

	"cash/core"
	"cash/pkg/fixedpoint"
	"cash/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// partial liquidations are granular to 0.1% of the trove's total debt
const chunkDenominator = 1000

type liquidationService struct {
	db          *db.DB
	system      *core.System
	collaterals core.ICollateralService
	troves      core.ITroveStore
	stats       core.IStatStore
	ledger      core.CustodyLedger
	oracle      core.IPriceOracleService
	fees        core.IFeeService
}

// New new liquidation service
func New(
	db *db.DB,
	system *core.System,
	collaterals core.ICollateralService,
	troves core.ITroveStore,
	stats core.IStatStore,
	ledger core.CustodyLedger,
	oracle core.IPriceOracleService,
	fees core.IFeeService,
) core.ILiquidationService {
	return &liquidationService{
		db:          db,
		system:      system,
		collaterals: collaterals,
		troves:      troves,
		stats:       stats,
		ledger:      ledger,
		oracle:      oracle,
		fees:        fees,
	}
}

// Liquidate closes an undercollateralized trove. The liquidator repays the
// debt net of the liquidation reserve, receives the reserve plus a
// penalty-dependent share of the collateral; the rest goes to the fee
// collector and back to the owner.
func (s *liquidationService) Liquidate(ctx context.Context, liquidator, assetID, owner string) (*core.LiquidationOutcome, error) {
	return s.liquidate(ctx, liquidator, assetID, owner, 0, true)
}

// PartialLiquidate applies the same per-unit economics on a chunk of debt,
// rounded down to a multiple of 0.1% of the trove's total debt. The reserve
// is released only on the liquidation that closes the position.
func (s *liquidationService) PartialLiquidate(ctx context.Context, liquidator, assetID, owner string, requestedDebt uint64) (*core.LiquidationOutcome, error) {
	return s.liquidate(ctx, liquidator, assetID, owner, requestedDebt, false)
}

func (s *liquidationService) liquidate(ctx context.Context, liquidator, assetID, owner string, requestedDebt uint64, full bool) (*core.LiquidationOutcome, error) {
	if liquidator == owner {
		return nil, core.ErrSelfLiquidation
	}

	collateral, err := s.collaterals.Valid(ctx, assetID)
	if err != nil {
		return nil, err
	}

	trove, err := s.troves.Find(ctx, assetID, owner)
	if err != nil {
		return nil, err
	}
	if !trove.Active {
		return nil, core.ErrPositionNotFound
	}
	if trove.Debt == 0 {
		return nil, core.ErrCannotLiquidate
	}

	price, err := s.oracle.GetPrice(ctx, collateral)
	if err != nil {
		return nil, err
	}
	value, err := fixedpoint.Value(trove.Collateral, price, collateral.Decimals)
	if err != nil {
		return nil, err
	}

	ratio, _ := fixedpoint.RatioBps(value, trove.Debt)
	if ratio > collateral.LiquidationThreshold {
		return nil, core.ErrCannotLiquidate
	}

	chunkDebt := trove.Debt
	if !full {
		if chunkDebt, err = s.chunk(collateral, trove, requestedDebt); err != nil {
			return nil, err
		}
	}

	closed := chunkDebt == trove.Debt

	// seize proportional collateral, ceiling so debt repaid is never
	// under-collected
	seized := trove.Collateral
	if !closed {
		if seized, err = fixedpoint.MulDivCeil(trove.Collateral, chunkDebt, trove.Debt); err != nil {
			return nil, err
		}
		if seized > trove.Collateral {
			seized = trove.Collateral
		}
	}
	seizedValue, err := fixedpoint.Value(seized, price, collateral.Decimals)
	if err != nil {
		return nil, err
	}

	liquidatorColl, protocolFee, refund, err := s.distribute(collateral, seized, seizedValue, chunkDebt, ratio, price)
	if err != nil {
		return nil, err
	}

	// the closing liquidation releases the reserve to the liquidator
	var reserveOut uint64
	burnAmount := chunkDebt
	if closed {
		reserveOut = collateral.LiquidationReserve
		if reserveOut > chunkDebt {
			reserveOut = chunkDebt
		}
		burnAmount = chunkDebt - reserveOut
	}

	balance, err := s.ledger.Balance(ctx, s.system.CashAssetID, liquidator)
	if err != nil {
		return nil, err
	}
	if balance < burnAmount {
		return nil, core.ErrInsufficientDebtBalance
	}

	traceID := id.GenTraceID()
	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.ledger.Burn(ctx, tx, s.system.CashAssetID, liquidator, burnAmount, core.JournalReasonTroveLiquidated, traceID); err != nil {
			if err == core.ErrInsufficientBalance {
				return core.ErrInsufficientDebtBalance
			}
			return err
		}
		if reserveOut > 0 {
			if err := s.ledger.Transfer(ctx, tx, s.system.CashAssetID, core.LedgerAccountReserve, liquidator, reserveOut, core.JournalReasonTroveLiquidated, traceID); err != nil {
				return err
			}
		}

		if err := s.ledger.Transfer(ctx, tx, assetID, core.LedgerAccountCustody, liquidator, liquidatorColl, core.JournalReasonTroveLiquidated, traceID); err != nil {
			return err
		}
		if err := s.ledger.Transfer(ctx, tx, assetID, core.LedgerAccountCustody, core.LedgerAccountFee, protocolFee, core.JournalReasonTroveLiquidated, traceID); err != nil {
			return err
		}
		if err := s.ledger.Transfer(ctx, tx, assetID, core.LedgerAccountCustody, owner, refund, core.JournalReasonTroveLiquidated, traceID); err != nil {
			return err
		}

		if err := s.subStats(ctx, tx, assetID, seized, chunkDebt); err != nil {
			return err
		}

		trove.Collateral -= seized
		trove.Debt -= chunkDebt
		if closed {
			trove.Collateral = 0
			trove.Debt = 0
			trove.Active = false
		}
		return s.troves.Update(ctx, tx, trove)
	}); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).
		WithField("service", "liquidation").
		Infof("trove %s/%s liquidated by %s: repaid %d seized %d closed %v",
			assetID, owner, liquidator, chunkDebt, seized, closed)

	return &core.LiquidationOutcome{
		DebtRepaid:         chunkDebt,
		CollateralSeized:   seized,
		LiquidatorReceived: liquidatorColl,
		ProtocolFee:        protocolFee,
		OwnerRefund:        refund,
		ReserveReleased:    reserveOut,
		Closed:             closed,
	}, nil
}

// chunk rounds the requested debt down to a multiple of the chunk size,
// then caps it so the residual debt is either zero or at least the
// minimum-debt floor.
func (s *liquidationService) chunk(collateral *core.Collateral, trove *core.Trove, requestedDebt uint64) (uint64, error) {
	if requestedDebt == 0 || requestedDebt > trove.Debt {
		return 0, core.ErrInvalidDebtAmount
	}

	size := trove.Debt / chunkDenominator
	if size == 0 {
		// debt too small to chunk; degenerate to a full liquidation
		return trove.Debt, nil
	}

	chunkDebt := requestedDebt - requestedDebt%size
	if chunkDebt == 0 {
		return 0, core.ErrInvalidDebtAmount
	}

	floor := collateral.DebtFloor()
	if residual := trove.Debt - chunkDebt; residual > 0 && residual < floor {
		if trove.Debt <= floor {
			return trove.Debt, nil
		}
		chunkDebt = trove.Debt - floor
	}

	return chunkDebt, nil
}

// distribute splits the seized collateral between liquidator, fee collector
// and owner according to the ICR tier. The three parts always sum to the
// seized amount exactly.
func (s *liquidationService) distribute(collateral *core.Collateral, seized, seizedValue, chunkDebt, ratio uint64, price uint64) (liquidatorColl, protocolFee, refund uint64, err error) {
	precision := uint64(fixedpoint.RatioPrecision)

	if ratio <= precision {
		// underwater: the liquidator takes everything
		return seized, 0, 0, nil
	}

	var penaltyValue uint64
	if ratio <= precision+collateral.LiquidationPenalty {
		// thin cushion: the whole surplus over the debt is the penalty
		penaltyValue = seizedValue - chunkDebt
	} else {
		if penaltyValue, err = fixedpoint.BpsMul(chunkDebt, collateral.LiquidationPenalty); err != nil {
			return 0, 0, 0, err
		}
	}

	penaltyColl, err := fixedpoint.FromValue(penaltyValue, price, collateral.Decimals)
	if err != nil {
		return 0, 0, 0, err
	}
	debtColl, err := fixedpoint.FromValue(chunkDebt, price, collateral.Decimals)
	if err != nil {
		return 0, 0, 0, err
	}

	var liquidatorShare uint64
	protocolFee, liquidatorShare = s.fees.PenaltySplit(collateral, penaltyColl)

	liquidatorColl, err = fixedpoint.Add(debtColl, liquidatorShare)
	if err != nil {
		return 0, 0, 0, err
	}

	// clamp to the seized amount, rounding dust goes back to the owner
	if protocolFee > seized {
		protocolFee = seized
	}
	if liquidatorColl > seized-protocolFee {
		liquidatorColl = seized - protocolFee
	}
	refund = seized - liquidatorColl - protocolFee

	return liquidatorColl, protocolFee, refund, nil
}

func (s *liquidationService) subStats(ctx context.Context, tx *db.DB, assetID string, collateral, debt uint64) error {
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
