package fixedpoint

import (
	"math"
	"testing"

	"cash/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	cases := []struct {
		name     string
		amount   uint64
		price    uint64
		decimals int32
		want     uint64
	}{
		{"native 8 decimals", 100_000_000, 200_000_000, 8, 200_000_000},
		{"scale up from 6", 1_000_000, 200_000_000, 6, 200_000_000},
		{"scale down from 12", 1_000_000_000_000, 200_000_000, 12, 200_000_000},
		{"floor on odd amounts", 3, 100_000_000, 8, 2},
		{"zero amount", 0, 200_000_000, 8, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Value(c.amount, c.price, c.decimals)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestValueOverflow(t *testing.T) {
	// both operands near the 64-bit range; the product only fits the wide
	// accumulator and the result must fail instead of truncating
	_, err := Value(math.MaxUint64, math.MaxUint64, 0)
	assert.Equal(t, core.ErrOverflow, err)

	// same product survives when the divisor brings it back in range
	got, err := Value(math.MaxUint64, 100_000_000, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got)
}

func TestFromValueRoundTrip(t *testing.T) {
	// 2 CASH at $2.00 buys 1 unit of an 8-decimals collateral
	out, err := FromValue(200_000_000, 200_000_000, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000), out)

	_, err = FromValue(1, 0, 8)
	assert.Equal(t, core.ErrInvalidPrice, err)
}

func TestCheckRatioZeroDebt(t *testing.T) {
	for _, collateral := range []uint64{0, 1, math.MaxUint64} {
		assert.NoError(t, CheckRatio(collateral, 0, 15000))
	}
}

func TestCheckRatioBoundary(t *testing.T) {
	// collateral=85, debt=100 at price $2.00 with MCR 150%: value 170,
	// ratio 17000 bp, passes
	value, err := Value(85_0000_0000, 200_000_000, 8)
	require.NoError(t, err)
	assert.NoError(t, CheckRatio(value, 100_0000_0000, 15000))

	// collateral=749, debt=1000 at the same config: ratio 14980 bp, fails
	value, err = Value(749_0000_0000, 200_000_000, 8)
	require.NoError(t, err)
	assert.Equal(t, core.ErrInsufficientCollateral, CheckRatio(value, 1000_0000_0000, 15000))

	// exactly at MCR passes
	value, err = Value(750_0000_0000, 200_000_000, 8)
	require.NoError(t, err)
	assert.NoError(t, CheckRatio(value, 1000_0000_0000, 15000))
}

func TestRatioBps(t *testing.T) {
	ratio, ok := RatioBps(150, 100)
	require.True(t, ok)
	assert.Equal(t, uint64(15000), ratio)

	_, ok = RatioBps(100, 0)
	assert.False(t, ok)

	// ratio beyond the uint64 domain is capped, not wrapped
	ratio, ok = RatioBps(math.MaxUint64, 1)
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), ratio)
}

func TestMulDivCeil(t *testing.T) {
	got, err := MulDiv(10, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got)

	got, err = MulDivCeil(10, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), got)

	_, err = MulDiv(1, 1, 0)
	assert.Error(t, err)
}

func TestAdd(t *testing.T) {
	got, err := Add(1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got)

	_, err = Add(math.MaxUint64, 1)
	assert.Equal(t, core.ErrOverflow, err)
}
