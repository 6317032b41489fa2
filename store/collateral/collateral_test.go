package collateral

import (
	"testing"

	"cash/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutableColumnsKeepZeroValues(t *testing.T) {
	c := &core.Collateral{
		AssetID:          "965e5c6e-434c-3fa9-b780-c50f43cd955c",
		Enabled:          false,
		OpenTroveAllowed: false,
		BorrowAllowed:    false,
		DepositAllowed:   false,
		RedeemAllowed:    false,
		BorrowRate:       0,
		RedemptionFee:    0,
		Version:          3,
	}

	columns := mutableColumns(c)

	// turning a gate off must reach the database even though false is the
	// zero value of the field
	for _, gate := range []string{"enabled", "open_trove_allowed", "borrow_allowed", "deposit_allowed", "redeem_allowed"} {
		v, ok := columns[gate]
		require.True(t, ok, gate)
		assert.Equal(t, false, v, gate)
	}

	for _, rate := range []string{"borrow_rate", "redemption_fee"} {
		v, ok := columns[rate]
		require.True(t, ok, rate)
		assert.Equal(t, uint64(0), v, rate)
	}

	assert.Equal(t, int64(3), columns["version"])
}

func TestMutableColumnsCoverConfig(t *testing.T) {
	columns := mutableColumns(&core.Collateral{})

	for _, name := range []string{
		"minimum_debt",
		"mcr",
		"borrow_rate",
		"liquidation_reserve",
		"liquidation_threshold",
		"liquidation_penalty",
		"liquidation_fee_protocol",
		"redemption_fee",
		"redemption_fee_gratuity",
		"oracle_id",
		"max_price_age",
		"enabled",
		"open_trove_allowed",
		"borrow_allowed",
		"deposit_allowed",
		"redeem_allowed",
		"version",
	} {
		_, ok := columns[name]
		assert.True(t, ok, name)
	}
}
