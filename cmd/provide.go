package cmd

import (
	"cash/core"
	collateralservice "cash/service/collateral"
	feeservice "cash/service/fee"
	ledgerservice "cash/service/ledger"
	liquidationservice "cash/service/liquidation"
	oracleservice "cash/service/oracle"
	providerservice "cash/service/provider"
	redemptionservice "cash/service/redemption"
	troveservice "cash/service/trove"
	"cash/store/collateral"
	"cash/store/ledger"
	"cash/store/price"
	"cash/store/provider"
	"cash/store/stat"
	"cash/store/trove"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideSystem() *core.System {
	return &core.System{
		Admins:      cfg.Admins,
		CashAssetID: cfg.CashAssetID,
		Genesis:     cfg.Genesis,
		Version:     rootCmd.Version,
	}
}

// stores

func provideCollateralStore(db *db.DB) core.ICollateralStore {
	return collateral.New(db)
}

func provideTroveStore(db *db.DB) core.ITroveStore {
	return trove.New(db)
}

func provideStatStore(db *db.DB) core.IStatStore {
	return stat.New(db)
}

func provideProviderStore(db *db.DB) core.IProviderStore {
	return provider.New(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return price.New(db)
}

func provideLedgerStore(db *db.DB) core.ILedgerStore {
	return ledger.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// services

func provideLedgerService(db *db.DB) core.CustodyLedger {
	return ledgerservice.New(db, provideLedgerStore(db))
}

func provideCollateralService(db *db.DB, system *core.System, custody core.CustodyLedger) core.ICollateralService {
	return collateralservice.New(db, system, provideCollateralStore(db), custody)
}

func provideOracleService(db *db.DB, system *core.System) core.IPriceOracleService {
	return oracleservice.New(db, cfg.Oracle, system, providePriceStore(db))
}

func provideFeeService() core.IFeeService {
	return feeservice.New()
}

func provideProviderService(db *db.DB) core.IProviderService {
	return providerservice.New(db, provideProviderStore(db))
}

func provideTroveService(db *db.DB, system *core.System) core.ITroveService {
	custody := provideLedgerService(db)
	return troveservice.New(
		db,
		system,
		provideCollateralService(db, system, custody),
		provideTroveStore(db),
		provideStatStore(db),
		provideProviderStore(db),
		custody,
		provideOracleService(db, system),
		provideFeeService(),
	)
}

func provideLiquidationService(db *db.DB, system *core.System) core.ILiquidationService {
	custody := provideLedgerService(db)
	return liquidationservice.New(
		db,
		system,
		provideCollateralService(db, system, custody),
		provideTroveStore(db),
		provideStatStore(db),
		custody,
		provideOracleService(db, system),
		provideFeeService(),
	)
}

func provideRedemptionService(db *db.DB, system *core.System) core.IRedemptionService {
	custody := provideLedgerService(db)
	return redemptionservice.New(
		db,
		system,
		provideCollateralService(db, system, custody),
		provideTroveStore(db),
		provideStatStore(db),
		provideProviderStore(db),
		custody,
		provideOracleService(db, system),
		provideFeeService(),
	)
}
