package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100001

	// authorization

	// ErrNotAdmin caller is not an admin
	ErrNotAdmin ErrorCode = 100100
	// ErrNotSetup debt token not configured yet
	ErrNotSetup ErrorCode = 100101

	// configuration

	// ErrUnsupportedCollateral collateral type never added or disabled
	ErrUnsupportedCollateral ErrorCode = 100200
	// ErrCoinNotInitialized collateral token not registered on the ledger
	ErrCoinNotInitialized ErrorCode = 100201
	// ErrOperationDisabled per-collateral operation gate closed
	ErrOperationDisabled ErrorCode = 100202
	// ErrCollateralExists collateral type already added
	ErrCollateralExists ErrorCode = 100203

	// solvency

	// ErrInsufficientCollateral collateral ratio below MCR
	ErrInsufficientCollateral ErrorCode = 100300
	// ErrBelowMinimumDebt residual debt would fall below the minimum debt floor
	ErrBelowMinimumDebt ErrorCode = 100301
	// ErrInvalidDebtAmount zero, dust or excessive debt amount
	ErrInvalidDebtAmount ErrorCode = 100302

	// position

	// ErrPositionAlreadyExists trove already open for (collateral, owner)
	ErrPositionAlreadyExists ErrorCode = 100400
	// ErrPositionNotFound no active trove for (collateral, owner)
	ErrPositionNotFound ErrorCode = 100401

	// liquidation

	// ErrSelfLiquidation liquidator and owner are the same address
	ErrSelfLiquidation ErrorCode = 100500
	// ErrCannotLiquidate ICR above the liquidation threshold
	ErrCannotLiquidate ErrorCode = 100501

	// redemption

	// ErrInvalidArrayLength batch arrays have mismatched lengths
	ErrInvalidArrayLength ErrorCode = 100600
	// ErrExcessiveSlippage collateral out under the caller's minimum
	ErrExcessiveSlippage ErrorCode = 100601
	// ErrNotRedemptionProvider target owner has not opted in as a provider
	ErrNotRedemptionProvider ErrorCode = 100602

	// balance

	// ErrInsufficientDebtBalance caller holds too little of the debt token
	ErrInsufficientDebtBalance ErrorCode = 100700
	// ErrInsufficientBalance ledger account holds too little of a token
	ErrInsufficientBalance ErrorCode = 100701

	// arithmetic

	// ErrOverflow result exceeds the 64 bit amount domain
	ErrOverflow ErrorCode = 100800

	// oracle

	// ErrPriceStale price older than max_price_age
	ErrPriceStale ErrorCode = 100900
	// ErrInvalidPrice missing or non-positive price
	ErrInvalidPrice ErrorCode = 100901
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	switch e {
	case ErrNotAdmin:
		return "not admin"
	case ErrNotSetup:
		return "debt token not setup"
	case ErrUnsupportedCollateral:
		return "unsupported collateral"
	case ErrCoinNotInitialized:
		return "coin not initialized"
	case ErrOperationDisabled:
		return "operation disabled"
	case ErrCollateralExists:
		return "collateral already added"
	case ErrInsufficientCollateral:
		return "insufficient collateral"
	case ErrBelowMinimumDebt:
		return "below minimum debt"
	case ErrInvalidDebtAmount:
		return "invalid debt amount"
	case ErrPositionAlreadyExists:
		return "position already exists"
	case ErrPositionNotFound:
		return "position not found"
	case ErrSelfLiquidation:
		return "self liquidation"
	case ErrCannotLiquidate:
		return "cannot liquidate"
	case ErrInvalidArrayLength:
		return "invalid array length"
	case ErrExcessiveSlippage:
		return "excessive slippage"
	case ErrNotRedemptionProvider:
		return "not a redemption provider"
	case ErrInsufficientDebtBalance:
		return "insufficient debt balance"
	case ErrInsufficientBalance:
		return "insufficient balance"
	case ErrOverflow:
		return "overflow"
	case ErrPriceStale:
		return "price stale"
	case ErrInvalidPrice:
		return "invalid price"
	case ErrInvalidAmount:
		return "invalid amount"
	default:
		return e.String()
	}
}
