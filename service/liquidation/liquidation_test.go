package liquidation

import (
	"context"
	"testing"

	"cash/core"
	"cash/service/fee"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *liquidationService {
	return &liquidationService{fees: fee.New()}
}

func TestChunk(t *testing.T) {
	s := testService()

	collateral := &core.Collateral{MinimumDebt: 800, LiquidationReserve: 100}
	trove := &core.Trove{Debt: 100_000}

	// rounded down to a multiple of debt/1000
	chunkDebt, err := s.chunk(collateral, trove, 250)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), chunkDebt)

	// an exact multiple stays untouched
	chunkDebt, err = s.chunk(collateral, trove, 10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), chunkDebt)

	// zero or more than the debt is rejected
	_, err = s.chunk(collateral, trove, 0)
	assert.Equal(t, core.ErrInvalidDebtAmount, err)
	_, err = s.chunk(collateral, trove, trove.Debt+1)
	assert.Equal(t, core.ErrInvalidDebtAmount, err)

	// below one chunk
	_, err = s.chunk(collateral, trove, 99)
	assert.Equal(t, core.ErrInvalidDebtAmount, err)
}

func TestChunkDegenerate(t *testing.T) {
	s := testService()

	collateral := &core.Collateral{MinimumDebt: 100, LiquidationReserve: 0}

	// debt too small to chunk degenerates to a full liquidation
	trove := &core.Trove{Debt: 999}
	chunkDebt, err := s.chunk(collateral, trove, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(999), chunkDebt)
}

func TestChunkFloorCap(t *testing.T) {
	s := testService()

	collateral := &core.Collateral{MinimumDebt: 800, LiquidationReserve: 100}

	// the residual would dip below the floor, cap the chunk so exactly the
	// floor remains
	trove := &core.Trove{Debt: 1000}
	chunkDebt, err := s.chunk(collateral, trove, 200)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), chunkDebt)
	assert.Equal(t, collateral.DebtFloor(), trove.Debt-chunkDebt)

	// debt at or below the floor closes entirely
	collateral.MinimumDebt = 1200
	chunkDebt, err = s.chunk(collateral, trove, 500)
	require.NoError(t, err)
	assert.Equal(t, trove.Debt, chunkDebt)
}

func TestDistributeUnderwater(t *testing.T) {
	s := testService()

	collateral := &core.Collateral{
		Decimals:               8,
		LiquidationPenalty:     1000,
		LiquidationFeeProtocol: 2000,
	}
	price := uint64(1_00000000)

	// ratio below 100%: the liquidator takes all seized collateral
	liquidatorColl, protocolFee, refund, err := s.distribute(collateral, 90_00000000, 90_00000000, 100_00000000, 9000, price)
	require.NoError(t, err)
	assert.Equal(t, uint64(90_00000000), liquidatorColl)
	assert.Equal(t, uint64(0), protocolFee)
	assert.Equal(t, uint64(0), refund)
}

func TestDistributeThinCushion(t *testing.T) {
	s := testService()

	collateral := &core.Collateral{
		Decimals:               8,
		LiquidationPenalty:     1000,
		LiquidationFeeProtocol: 2000,
	}
	price := uint64(1_00000000)

	// 100% < ratio <= 110%: the whole surplus over the debt is the penalty
	seized := uint64(105_00000000)
	liquidatorColl, protocolFee, refund, err := s.distribute(collateral, seized, 105_00000000, 100_00000000, 10500, price)
	require.NoError(t, err)
	assert.Equal(t, uint64(104_00000000), liquidatorColl)
	assert.Equal(t, uint64(1_00000000), protocolFee)
	assert.Equal(t, uint64(0), refund)
	assert.Equal(t, seized, liquidatorColl+protocolFee+refund)
}

func TestDistributeWithRefund(t *testing.T) {
	s := testService()

	collateral := &core.Collateral{
		Decimals:               8,
		LiquidationPenalty:     1000,
		LiquidationFeeProtocol: 2000,
	}
	price := uint64(1_00000000)

	// ratio above 110%: a fixed 10% penalty, the rest refunds to the owner
	seized := uint64(120_00000000)
	liquidatorColl, protocolFee, refund, err := s.distribute(collateral, seized, 120_00000000, 100_00000000, 12000, price)
	require.NoError(t, err)
	assert.Equal(t, uint64(108_00000000), liquidatorColl)
	assert.Equal(t, uint64(2_00000000), protocolFee)
	assert.Equal(t, uint64(10_00000000), refund)
	assert.Equal(t, seized, liquidatorColl+protocolFee+refund)
}

func TestDistributeConservation(t *testing.T) {
	s := testService()

	collateral := &core.Collateral{
		Decimals:               8,
		LiquidationPenalty:     750,
		LiquidationFeeProtocol: 3333,
	}

	// awkward prices force rounding; the three parts must still sum to the
	// seized amount exactly
	price := uint64(333_333_333)
	cases := []struct {
		seized, seizedValue, chunkDebt, ratio uint64
	}{
		{30_00000000, 99_99999990, 100_00000000, 9999},
		{31_00000000, 103_33333323, 100_00000000, 10333},
		{33_00000000, 109_99999989, 100_00000000, 10999},
		{36_00000000, 119_99999988, 100_00000000, 11999},
	}

	for _, c := range cases {
		liquidatorColl, protocolFee, refund, err := s.distribute(collateral, c.seized, c.seizedValue, c.chunkDebt, c.ratio, price)
		require.NoError(t, err)
		assert.Equal(t, c.seized, liquidatorColl+protocolFee+refund)
	}
}

func TestLiquidateSelf(t *testing.T) {
	ctx := context.Background()
	s := testService()

	// rejected before any state is read, so the bare service suffices
	_, err := s.Liquidate(ctx, "alice", "c6d0c728-2624-429b-8e0d-d9d19b6592fa", "alice")
	assert.Equal(t, core.ErrSelfLiquidation, err)

	_, err = s.PartialLiquidate(ctx, "alice", "c6d0c728-2624-429b-8e0d-d9d19b6592fa", "alice", 100)
	assert.Equal(t, core.ErrSelfLiquidation, err)
}
