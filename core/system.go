package core

import (
	"context"
)

// System stores system information.
type System struct {
	Admins []string
	// asset id of the CASH debt token
	CashAssetID string
	Genesis     int64
	Version     string
}

// IsAdmin is admin
func (s *System) IsAdmin(userID string) bool {
	if len(s.Admins) == 0 {
		return false
	}

	for _, a := range s.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// IFeeService fee computation interface
type IFeeService interface {
	BorrowFee(collateral *Collateral, debtRequested uint64) (uint64, error)
	PenaltySplit(collateral *Collateral, penaltyCollateral uint64) (protocolFee, liquidatorShare uint64)
	RedemptionFees(collateral *Collateral, collateralOut uint64) (fee, gratuity, net uint64)
}

// IProviderService redemption provider registration
type IProviderService interface {
	Register(ctx context.Context, userID, assetID string, enabled bool) error
	IsProvider(ctx context.Context, assetID, userID string) (bool, error)
}
