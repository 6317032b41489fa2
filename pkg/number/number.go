package number

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FromUnits renders base units at the given precision as a decimal, e.g.
// FromUnits(150000000, 8) = 1.5.
func FromUnits(amount uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -decimals)
}

// ToUnits converts a decimal to base units, truncating excess precision.
// ok is false for negative values or values beyond the uint64 domain.
func ToUnits(d decimal.Decimal, decimals int32) (uint64, bool) {
	scaled := d.Shift(decimals).Truncate(0)
	if scaled.Sign() < 0 {
		return 0, false
	}

	v := scaled.BigInt()
	if !v.IsUint64() {
		return 0, false
	}

	return v.Uint64(), true
}
