package number

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromUnits(t *testing.T) {
	assert.Equal(t, "1.5", FromUnits(150000000, 8).String())
	assert.Equal(t, "0", FromUnits(0, 8).String())
	assert.Equal(t, "0.00000001", FromUnits(1, 8).String())
	assert.Equal(t, "184467440737.09551615", FromUnits(math.MaxUint64, 8).String())
}

func TestToUnits(t *testing.T) {
	v, ok := ToUnits(decimal.RequireFromString("1.5"), 8)
	require.True(t, ok)
	assert.Equal(t, uint64(150000000), v)

	// excess precision truncates
	v, ok = ToUnits(decimal.RequireFromString("0.000000019"), 8)
	require.True(t, ok)
	assert.Equal(t, uint64(1), v)

	_, ok = ToUnits(decimal.RequireFromString("-1"), 8)
	assert.False(t, ok)

	_, ok = ToUnits(decimal.RequireFromString("184467440737.09551616"), 8)
	assert.False(t, ok)
}
