package redemption

import (
	"context"
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
	testRedeemer    = "alice"
	testProvider    = "bob"
)

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
	if !f.collateral.Enabled {
		return nil, core.ErrOperationDisabled
	}
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
	if f.trove == nil || f.trove.UserID != userID {
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

type fakeProviders struct {
	enabled map[string]bool
}

func (f *fakeProviders) Set(ctx context.Context, tx *db.DB, assetID, userID string, enabled bool) error {
	f.enabled[userID] = enabled
	return nil
}

func (f *fakeProviders) Init(ctx context.Context, tx *db.DB, assetID, userID string) error {
	if _, ok := f.enabled[userID]; !ok {
		f.enabled[userID] = true
	}
	return nil
}

func (f *fakeProviders) Enabled(ctx context.Context, assetID, userID string) (bool, error) {
	return f.enabled[userID], nil
}

// fakeLedger keeps balances keyed asset:account and records every burn so
// tests can assert the reserve leg.
type fakeLedger struct {
	balances map[string]uint64
	burns    map[string]uint64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		balances: map[string]uint64{},
		burns:    map[string]uint64{},
	}
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
	f.burns[key(assetID, from)] += amount
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

type fixture struct {
	svc       *redemptionService
	troves    *fakeTroves
	stats     *fakeStats
	providers *fakeProviders
	ledger    *fakeLedger
}

// newFixture wires a service around a single trove at price 1.0 with
// MinimumDebt 100 and LiquidationReserve 10, fees zero unless set on c.
func newFixture(trove *core.Trove, c *core.Collateral) *fixture {
	if c == nil {
		c = &core.Collateral{
			AssetID:            testAssetID,
			Decimals:           8,
			MinimumDebt:        100,
			LiquidationReserve: 10,
			Enabled:            true,
			RedeemAllowed:      true,
		}
	}

	troves := &fakeTroves{trove: trove}
	stats := &fakeStats{stat: &core.TotalStat{
		AssetID:         testAssetID,
		TotalCollateral: trove.Collateral,
		TotalDebt:       trove.Debt,
	}}
	providers := &fakeProviders{enabled: map[string]bool{testProvider: true}}
	ledger := newFakeLedger()
	ledger.balances[key(testAssetID, core.LedgerAccountCustody)] = trove.Collateral

	svc := &redemptionService{
		system:      &core.System{CashAssetID: testCashAssetID},
		collaterals: &fakeCollaterals{collateral: c},
		troves:      troves,
		stats:       stats,
		providers:   providers,
		ledger:      ledger,
		oracle:      &fakeOracle{price: 100000000},
		fees:        fee.New(),
	}

	return &fixture{svc: svc, troves: troves, stats: stats, providers: providers, ledger: ledger}
}

func TestRedeemClosesTroveAndBurnsReserve(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(&core.Trove{
		AssetID:    testAssetID,
		UserID:     testProvider,
		Collateral: 1000,
		Debt:       210,
		Active:     true,
	}, nil)
	fx.ledger.balances[key(testCashAssetID, testRedeemer)] = 500
	fx.ledger.balances[key(testCashAssetID, core.LedgerAccountReserve)] = 10

	// debt 210, reserve 10: redeemable at most 200, the request is clamped
	outcome, err := fx.svc.redeem(ctx, nil, testRedeemer, testAssetID, testProvider, 500, 0, "trace")
	require.NoError(t, err)

	assert.Equal(t, uint64(200), outcome.DebtRedeemed)
	assert.Equal(t, uint64(200), outcome.CollateralOut)
	assert.True(t, outcome.Closed)

	assert.False(t, fx.troves.trove.Active)
	assert.Equal(t, uint64(0), fx.troves.trove.Collateral)
	assert.Equal(t, uint64(0), fx.troves.trove.Debt)

	// the reserve minted at open is burned, not paid out
	assert.Equal(t, uint64(10), fx.ledger.burns[key(testCashAssetID, core.LedgerAccountReserve)])
	assert.Equal(t, uint64(200), fx.ledger.burns[key(testCashAssetID, testRedeemer)])

	// remaining collateral goes back to the provider
	assert.Equal(t, uint64(800), fx.ledger.balances[key(testAssetID, testProvider)])
	assert.Equal(t, uint64(200), fx.ledger.balances[key(testAssetID, testRedeemer)])
	assert.Equal(t, uint64(0), fx.ledger.balances[key(testAssetID, core.LedgerAccountCustody)])

	assert.Equal(t, uint64(0), fx.stats.stat.TotalCollateral)
	assert.Equal(t, uint64(0), fx.stats.stat.TotalDebt)
}

func TestRedeemClampsToDebtFloor(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(&core.Trove{
		AssetID:    testAssetID,
		UserID:     testProvider,
		Collateral: 1000,
		Debt:       400,
		Active:     true,
	}, nil)
	fx.ledger.balances[key(testCashAssetID, testRedeemer)] = 400

	// 400 - 350 = 50 would undercut the floor of 110, so the amount is
	// pushed down to 400 - 110 = 290
	outcome, err := fx.svc.redeem(ctx, nil, testRedeemer, testAssetID, testProvider, 350, 0, "trace")
	require.NoError(t, err)

	assert.Equal(t, uint64(290), outcome.DebtRedeemed)
	assert.False(t, outcome.Closed)
	assert.True(t, fx.troves.trove.Active)
	assert.Equal(t, uint64(110), fx.troves.trove.Debt)
	assert.Equal(t, uint64(710), fx.troves.trove.Collateral)
	assert.Equal(t, uint64(110), fx.stats.stat.TotalDebt)
	assert.Equal(t, uint64(710), fx.stats.stat.TotalCollateral)
}

func TestRedeemAtFloor(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(&core.Trove{
		AssetID:    testAssetID,
		UserID:     testProvider,
		Collateral: 1000,
		Debt:       110,
		Active:     true,
	}, nil)
	fx.ledger.balances[key(testCashAssetID, testRedeemer)] = 200
	fx.ledger.balances[key(testCashAssetID, core.LedgerAccountReserve)] = 10

	// a trove sitting exactly on the floor cannot be redeemed partially
	_, err := fx.svc.redeem(ctx, nil, testRedeemer, testAssetID, testProvider, 50, 0, "trace")
	assert.Equal(t, core.ErrInvalidDebtAmount, err)

	// but redeeming everything above the reserve closes it
	outcome, err := fx.svc.redeem(ctx, nil, testRedeemer, testAssetID, testProvider, 100, 0, "trace")
	require.NoError(t, err)
	assert.True(t, outcome.Closed)
	assert.Equal(t, uint64(100), outcome.DebtRedeemed)
	assert.Equal(t, uint64(10), fx.ledger.burns[key(testCashAssetID, core.LedgerAccountReserve)])
}

func TestRedeemNotProvider(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(&core.Trove{
		AssetID:    testAssetID,
		UserID:     testProvider,
		Collateral: 1000,
		Debt:       210,
		Active:     true,
	}, nil)
	fx.providers.enabled[testProvider] = false
	fx.ledger.balances[key(testCashAssetID, testRedeemer)] = 200

	_, err := fx.svc.redeem(ctx, nil, testRedeemer, testAssetID, testProvider, 100, 0, "trace")
	assert.Equal(t, core.ErrNotRedemptionProvider, err)
	assert.Equal(t, uint64(200), fx.ledger.balances[key(testCashAssetID, testRedeemer)])
	assert.Equal(t, uint64(210), fx.troves.trove.Debt)
}

func TestRedeemSlippage(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(&core.Trove{
		AssetID:    testAssetID,
		UserID:     testProvider,
		Collateral: 1000,
		Debt:       400,
		Active:     true,
	}, nil)
	fx.ledger.balances[key(testCashAssetID, testRedeemer)] = 400

	_, err := fx.svc.redeem(ctx, nil, testRedeemer, testAssetID, testProvider, 200, 500, "trace")
	assert.Equal(t, core.ErrExcessiveSlippage, err)

	// nothing moved
	assert.Equal(t, uint64(400), fx.ledger.balances[key(testCashAssetID, testRedeemer)])
	assert.Equal(t, uint64(1000), fx.ledger.balances[key(testAssetID, core.LedgerAccountCustody)])
	assert.Equal(t, uint64(400), fx.troves.trove.Debt)
}

func TestRedeemMultipleMismatchedLengths(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(&core.Trove{
		AssetID:    testAssetID,
		UserID:     testProvider,
		Collateral: 1000,
		Debt:       400,
		Active:     true,
	}, nil)
	fx.ledger.balances[key(testCashAssetID, testRedeemer)] = 400

	cases := []struct {
		providers []string
		amounts   []uint64
		minOuts   []uint64
	}{
		{[]string{testProvider, "carol"}, []uint64{100}, []uint64{0, 0}},
		{[]string{testProvider}, []uint64{100, 100}, []uint64{0}},
		{[]string{testProvider}, []uint64{100}, []uint64{0, 0}},
	}

	for _, c := range cases {
		outcomes, err := fx.svc.RedeemMultiple(ctx, testRedeemer, testAssetID, c.providers, c.amounts, c.minOuts)
		assert.Equal(t, core.ErrInvalidArrayLength, err)
		assert.Nil(t, outcomes)
	}

	// rejected before anything was touched
	assert.Equal(t, uint64(400), fx.ledger.balances[key(testCashAssetID, testRedeemer)])
	assert.Equal(t, uint64(400), fx.troves.trove.Debt)
	assert.Equal(t, uint64(1000), fx.troves.trove.Collateral)
}

func TestRedeemTakesFees(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(&core.Trove{
		AssetID:    testAssetID,
		UserID:     testProvider,
		Collateral: 100000,
		Debt:       50000,
		Active:     true,
	}, &core.Collateral{
		AssetID:               testAssetID,
		Decimals:              8,
		MinimumDebt:           100,
		LiquidationReserve:    10,
		RedemptionFee:         50, // 0.5%
		RedemptionFeeGratuity: 10, // 0.1%
		Enabled:               true,
		RedeemAllowed:         true,
	})
	fx.ledger.balances[key(testCashAssetID, testRedeemer)] = 10000

	outcome, err := fx.svc.redeem(ctx, nil, testRedeemer, testAssetID, testProvider, 10000, 0, "trace")
	require.NoError(t, err)

	assert.Equal(t, uint64(10000), outcome.DebtRedeemed)
	assert.Equal(t, uint64(50), outcome.Fee)
	assert.Equal(t, uint64(10), outcome.Gratuity)
	assert.Equal(t, uint64(9940), outcome.CollateralOut)

	assert.Equal(t, uint64(50), fx.ledger.balances[key(testAssetID, core.LedgerAccountFee)])
	assert.Equal(t, uint64(10), fx.ledger.balances[key(testAssetID, core.LedgerAccountGratuity)])
	assert.Equal(t, uint64(9940), fx.ledger.balances[key(testAssetID, testRedeemer)])
}
