package fixedpoint

import (
	"math"

	"cash/core"

	"github.com/holiman/uint256"
)

const (
	// DebtDecimals fixed precision of the debt token and of prices
	DebtDecimals = 8
	// RatioPrecision basis points per 100%
	RatioPrecision = 10000
	// MaxDecimals widest collateral precision the converter accepts
	MaxDecimals = 18
)

func pow10(n int32) uint64 {
	p := uint64(1)
	for i := int32(0); i < n; i++ {
		p *= 10
	}
	return p
}

// mulDiv computes a*b/den over a 256-bit accumulator, flooring or ceiling the
// final division, and fails with Overflow when the result leaves the 64-bit
// domain.
func mulDiv(a, b, den uint64, ceil bool) (uint64, error) {
	if den == 0 {
		return 0, core.ErrInvalidAmount
	}

	num := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	quo, rem := new(uint256.Int).DivMod(num, uint256.NewInt(den), new(uint256.Int))
	if ceil && !rem.IsZero() {
		quo.AddUint64(quo, 1)
	}
	if !quo.IsUint64() {
		return 0, core.ErrOverflow
	}

	return quo.Uint64(), nil
}

// MulDiv floor(a*b/den)
func MulDiv(a, b, den uint64) (uint64, error) {
	return mulDiv(a, b, den, false)
}

// MulDivCeil ceil(a*b/den)
func MulDivCeil(a, b, den uint64) (uint64, error) {
	return mulDiv(a, b, den, true)
}

// BpsMul floor(amount*bps/10000)
func BpsMul(amount, bps uint64) (uint64, error) {
	return mulDiv(amount, bps, RatioPrecision, false)
}

// Add overflow-checked addition
func Add(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, core.ErrOverflow
	}
	return a + b, nil
}

// Value converts collateral base units at the token's native precision into
// debt-token-equivalent units: floor(amount * price / 10^decimals). Price
// carries DebtDecimals implied decimals.
func Value(amount, price uint64, decimals int32) (uint64, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return 0, core.ErrInvalidAmount
	}
	return mulDiv(amount, price, pow10(decimals), false)
}

// FromValue converts debt-token-equivalent units back into collateral base
// units, flooring: floor(value * 10^decimals / price).
func FromValue(value, price uint64, decimals int32) (uint64, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return 0, core.ErrInvalidAmount
	}
	if price == 0 {
		return 0, core.ErrInvalidPrice
	}
	return mulDiv(value, pow10(decimals), price, false)
}

// RatioBps individual collateral ratio in basis points, capped at MaxUint64.
// ok is false when debt is zero, in which case the ratio is undefined.
func RatioBps(collateralValue, debt uint64) (uint64, bool) {
	if debt == 0 {
		return 0, false
	}

	num := new(uint256.Int).Mul(uint256.NewInt(collateralValue), uint256.NewInt(RatioPrecision))
	quo := new(uint256.Int).Div(num, uint256.NewInt(debt))
	if !quo.IsUint64() {
		return math.MaxUint64, true
	}

	return quo.Uint64(), true
}

// CheckRatio verifies collateralValue*10000 >= mcr*debt. Succeeds
// unconditionally when debt is zero. Pure, usable for previews.
func CheckRatio(collateralValue, debt, mcr uint64) error {
	if debt == 0 {
		return nil
	}

	lhs := new(uint256.Int).Mul(uint256.NewInt(collateralValue), uint256.NewInt(RatioPrecision))
	rhs := new(uint256.Int).Mul(uint256.NewInt(mcr), uint256.NewInt(debt))
	if lhs.Lt(rhs) {
		return core.ErrInsufficientCollateral
	}

	return nil
}
