package fee

import (
	"cash/core"
	"cash/pkg/fixedpoint"
)

type feeService struct{}

// New new fee service
func New() core.IFeeService {
	return &feeService{}
}

// BorrowFee one-off fee charged on the requested debt at mint time.
func (s *feeService) BorrowFee(collateral *core.Collateral, debtRequested uint64) (uint64, error) {
	return fixedpoint.BpsMul(debtRequested, collateral.BorrowRate)
}

// PenaltySplit splits a liquidation penalty, expressed in collateral units,
// between the fee collector and the liquidator.
func (s *feeService) PenaltySplit(collateral *core.Collateral, penaltyCollateral uint64) (uint64, uint64) {
	protocolFee, err := fixedpoint.BpsMul(penaltyCollateral, collateral.LiquidationFeeProtocol)
	if err != nil || protocolFee > penaltyCollateral {
		protocolFee = penaltyCollateral
	}

	return protocolFee, penaltyCollateral - protocolFee
}

// RedemptionFees deducts the redemption fee and gratuity from the collateral
// a redeemer receives.
func (s *feeService) RedemptionFees(collateral *core.Collateral, collateralOut uint64) (uint64, uint64, uint64) {
	f, err := fixedpoint.BpsMul(collateralOut, collateral.RedemptionFee)
	if err != nil {
		f = 0
	}
	g, err := fixedpoint.BpsMul(collateralOut, collateral.RedemptionFeeGratuity)
	if err != nil {
		g = 0
	}

	if f+g > collateralOut {
		// degenerate configs; fees never exceed the payout
		f = collateralOut
		g = 0
	}

	return f, g, collateralOut - f - g
}
