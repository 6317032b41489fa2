package trove

import (
	"context"
	"math"
	"testing"
	"time"

	"cash/core"
	"cash/service/fee"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCashAssetID = "4d8c508b-91c5-375b-92b0-ee702ed2dac5"
	testAssetID     = "c6d0c728-2624-429b-8e0d-d9d19b6592fa"
	testOwner       = "alice"
)

func TestSumDebt(t *testing.T) {
	total, err := sumDebt(100_00000000, 50000000, 10_00000000)
	require.NoError(t, err)
	assert.Equal(t, uint64(110_50000000), total)

	_, err = sumDebt(math.MaxUint64, 1, 0)
	assert.Equal(t, core.ErrOverflow, err)

	_, err = sumDebt(math.MaxUint64-1, 1, 1)
	assert.Equal(t, core.ErrOverflow, err)
}

type fakeCollaterals struct {
	collateral *core.Collateral
}

func (f *fakeCollaterals) AddCollateral(ctx context.Context, admin string, collateral *core.Collateral) error {
	return nil
}

func (f *fakeCollaterals) SetConfig(ctx context.Context, admin, assetID string, update core.CollateralUpdate) error {
	return nil
}

func (f *fakeCollaterals) SetOperationStatus(ctx context.Context, admin, assetID string, status core.OperationStatus) error {
	return nil
}

func (f *fakeCollaterals) Valid(ctx context.Context, assetID string) (*core.Collateral, error) {
	return f.collateral, nil
}

func (f *fakeCollaterals) Find(ctx context.Context, assetID string) (*core.Collateral, error) {
	return f.collateral, nil
}

type fakeTroves struct {
	trove *core.Trove
}

func (f *fakeTroves) Save(ctx context.Context, tx *db.DB, trove *core.Trove) error {
	f.trove = trove
	return nil
}

func (f *fakeTroves) Find(ctx context.Context, assetID, userID string) (*core.Trove, error) {
	if f.trove == nil {
		return nil, core.ErrPositionNotFound
	}
	return f.trove, nil
}

func (f *fakeTroves) FindByAsset(ctx context.Context, assetID string) ([]*core.Trove, error) {
	if f.trove == nil {
		return nil, nil
	}
	return []*core.Trove{f.trove}, nil
}

func (f *fakeTroves) CountActive(ctx context.Context, assetID string) (int64, error) {
	if f.trove != nil && f.trove.Active {
		return 1, nil
	}
	return 0, nil
}

func (f *fakeTroves) Update(ctx context.Context, tx *db.DB, trove *core.Trove) error {
	f.trove = trove
	return nil
}

type fakeStats struct {
	stat *core.TotalStat
}

func (f *fakeStats) Find(ctx context.Context, assetID string) (*core.TotalStat, error) {
	return f.stat, nil
}

func (f *fakeStats) Save(ctx context.Context, tx *db.DB, stat *core.TotalStat) error {
	f.stat = stat
	return nil
}

func (f *fakeStats) Update(ctx context.Context, tx *db.DB, stat *core.TotalStat) error {
	f.stat = stat
	return nil
}

// fakeProviders mirrors the store's create-only Init: an existing row keeps
// its flag.
type fakeProviders struct {
	flags map[string]bool
}

func (f *fakeProviders) Set(ctx context.Context, tx *db.DB, assetID, userID string, enabled bool) error {
	f.flags[userID] = enabled
	return nil
}

func (f *fakeProviders) Init(ctx context.Context, tx *db.DB, assetID, userID string) error {
	if _, ok := f.flags[userID]; !ok {
		f.flags[userID] = true
	}
	return nil
}

func (f *fakeProviders) Enabled(ctx context.Context, assetID, userID string) (bool, error) {
	return f.flags[userID], nil
}

type fakeLedger struct {
	balances map[string]uint64
}

func key(assetID, account string) string {
	return assetID + ":" + account
}

func (f *fakeLedger) RegisterToken(ctx context.Context, assetID, symbol string) error {
	return nil
}

func (f *fakeLedger) HasToken(ctx context.Context, assetID string) (bool, error) {
	return true, nil
}

func (f *fakeLedger) Mint(ctx context.Context, tx *db.DB, assetID, to string, amount uint64, reason, traceID string) error {
	f.balances[key(assetID, to)] += amount
	return nil
}

func (f *fakeLedger) Burn(ctx context.Context, tx *db.DB, assetID, from string, amount uint64, reason, traceID string) error {
	if f.balances[key(assetID, from)] < amount {
		return core.ErrInsufficientBalance
	}
	f.balances[key(assetID, from)] -= amount
	return nil
}

func (f *fakeLedger) Transfer(ctx context.Context, tx *db.DB, assetID, from, to string, amount uint64, reason, traceID string) error {
	if f.balances[key(assetID, from)] < amount {
		return core.ErrInsufficientBalance
	}
	f.balances[key(assetID, from)] -= amount
	f.balances[key(assetID, to)] += amount
	return nil
}

func (f *fakeLedger) Balance(ctx context.Context, assetID, account string) (uint64, error) {
	return f.balances[key(assetID, account)], nil
}

type fakeOracle struct {
	price uint64
}

func (f *fakeOracle) GetPrice(ctx context.Context, collateral *core.Collateral) (uint64, error) {
	return f.price, nil
}

func (f *fakeOracle) SetPrice(ctx context.Context, admin, oracleID string, price uint64, at time.Time) error {
	return nil
}

func (f *fakeOracle) PullPrice(ctx context.Context, oracleID string) (*core.PriceTicker, error) {
	return nil, nil
}

func TestOpenKeepsProviderOptOut(t *testing.T) {
	ctx := context.Background()

	troves := &fakeTroves{}
	providers := &fakeProviders{flags: map[string]bool{}}
	ledger := &fakeLedger{balances: map[string]uint64{
		key(testAssetID, testOwner): 10_000,
	}}
	s := &troveService{
		system:      &core.System{CashAssetID: testCashAssetID},
		collaterals: &fakeCollaterals{collateral: &core.Collateral{
			AssetID:            testAssetID,
			Decimals:           8,
			MinimumDebt:        100,
			MCR:                11000,
			LiquidationReserve: 10,
			Enabled:            true,
			OpenTroveAllowed:   true,
		}},
		troves:    troves,
		stats:     &fakeStats{stat: &core.TotalStat{AssetID: testAssetID}},
		providers: providers,
		ledger:    ledger,
		oracle:    &fakeOracle{price: 100000000},
		fees:      fee.New(),
	}

	// the first open enrols the owner as a redemption provider
	minted, err := s.open(ctx, nil, testOwner, testAssetID, 1000, 200)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), minted)

	enabled, err := providers.Enabled(ctx, testAssetID, testOwner)
	require.NoError(t, err)
	assert.True(t, enabled)

	// the owner opts out and closes the position
	require.NoError(t, providers.Set(ctx, nil, testAssetID, testOwner, false))
	troves.trove.Active = false
	troves.trove.Collateral = 0
	troves.trove.Debt = 0
	ledger.balances[key(testAssetID, testOwner)] = 10_000

	// re-opening must not re-enrol the opted-out owner
	_, err = s.open(ctx, nil, testOwner, testAssetID, 1000, 200)
	require.NoError(t, err)

	enabled, err = providers.Enabled(ctx, testAssetID, testOwner)
	require.NoError(t, err)
	assert.False(t, enabled)
}
