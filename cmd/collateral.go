package cmd

import (
	"strings"

	"cash/core"

	"github.com/spf13/cobra"
)

var addCollateralCmd = &cobra.Command{
	Use:     "add-collateral",
	Aliases: []string{"ac"},
	Short:   "register a new collateral type",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		custody := provideLedgerService(database)
		collateralSrv := provideCollateralService(database, system, custody)

		decimals, _ := cmd.Flags().GetInt32("decimals")
		mcr, _ := cmd.Flags().GetUint64("mcr")
		borrowRate, _ := cmd.Flags().GetUint64("borrow-rate")
		threshold, _ := cmd.Flags().GetUint64("threshold")
		penalty, _ := cmd.Flags().GetUint64("penalty")
		protocolFee, _ := cmd.Flags().GetUint64("protocol-fee")
		redemptionFee, _ := cmd.Flags().GetUint64("redemption-fee")
		gratuity, _ := cmd.Flags().GetUint64("gratuity")
		maxPriceAge, _ := cmd.Flags().GetInt64("max-price-age")

		collateral := &core.Collateral{
			AssetID:                mustString(cmd, "asset"),
			Symbol:                 strings.ToUpper(mustString(cmd, "symbol")),
			Decimals:               decimals,
			MinimumDebt:            parseDebtUnits(cmd, "min-debt"),
			MCR:                    mcr,
			BorrowRate:             borrowRate,
			LiquidationReserve:     parseDebtUnits(cmd, "reserve"),
			LiquidationThreshold:   threshold,
			LiquidationPenalty:     penalty,
			LiquidationFeeProtocol: protocolFee,
			RedemptionFee:          redemptionFee,
			RedemptionFeeGratuity:  gratuity,
			OracleID:               mustString(cmd, "oracle"),
			MaxPriceAge:            maxPriceAge,
			Enabled:                true,
			OpenTroveAllowed:       true,
			BorrowAllowed:          true,
			DepositAllowed:         true,
			RedeemAllowed:          true,
		}

		if err := collateralSrv.AddCollateral(ctx, adminID(cmd), collateral); err != nil {
			cmd.PrintErrln("add collateral error:", err)
			return
		}

		cmd.Println("collateral", collateral.Symbol, "registered")
	},
}

var updateCollateralCmd = &cobra.Command{
	Use:     "update-collateral",
	Aliases: []string{"uc"},
	Short:   "update collateral config, changed flags only",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		custody := provideLedgerService(database)
		collateralSrv := provideCollateralService(database, system, custody)

		var update core.CollateralUpdate
		if cmd.Flags().Changed("min-debt") {
			v := parseDebtUnits(cmd, "min-debt")
			update.MinimumDebt = &v
		}
		if cmd.Flags().Changed("mcr") {
			v, _ := cmd.Flags().GetUint64("mcr")
			update.MCR = &v
		}
		if cmd.Flags().Changed("borrow-rate") {
			v, _ := cmd.Flags().GetUint64("borrow-rate")
			update.BorrowRate = &v
		}
		if cmd.Flags().Changed("reserve") {
			v := parseDebtUnits(cmd, "reserve")
			update.LiquidationReserve = &v
		}
		if cmd.Flags().Changed("threshold") {
			v, _ := cmd.Flags().GetUint64("threshold")
			update.LiquidationThreshold = &v
		}
		if cmd.Flags().Changed("penalty") {
			v, _ := cmd.Flags().GetUint64("penalty")
			update.LiquidationPenalty = &v
		}
		if cmd.Flags().Changed("protocol-fee") {
			v, _ := cmd.Flags().GetUint64("protocol-fee")
			update.LiquidationFeeProtocol = &v
		}
		if cmd.Flags().Changed("redemption-fee") {
			v, _ := cmd.Flags().GetUint64("redemption-fee")
			update.RedemptionFee = &v
		}
		if cmd.Flags().Changed("gratuity") {
			v, _ := cmd.Flags().GetUint64("gratuity")
			update.RedemptionFeeGratuity = &v
		}
		if cmd.Flags().Changed("oracle") {
			v, _ := cmd.Flags().GetString("oracle")
			update.OracleID = &v
		}
		if cmd.Flags().Changed("max-price-age") {
			v, _ := cmd.Flags().GetInt64("max-price-age")
			update.MaxPriceAge = &v
		}
		if cmd.Flags().Changed("enabled") {
			v, _ := cmd.Flags().GetBool("enabled")
			update.Enabled = &v
		}

		if err := collateralSrv.SetConfig(ctx, adminID(cmd), mustString(cmd, "asset"), update); err != nil {
			cmd.PrintErrln("update collateral error:", err)
			return
		}

		cmd.Println("collateral updated")
	},
}

var setStatusCmd = &cobra.Command{
	Use:   "set-status",
	Short: "set per-collateral operation gates",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		custody := provideLedgerService(database)
		collateralSrv := provideCollateralService(database, system, custody)

		openTrove, _ := cmd.Flags().GetBool("open-trove")
		borrow, _ := cmd.Flags().GetBool("borrow")
		deposit, _ := cmd.Flags().GetBool("deposit")
		redeem, _ := cmd.Flags().GetBool("redeem")

		status := core.OperationStatus{
			OpenTrove: openTrove,
			Borrow:    borrow,
			Deposit:   deposit,
			Redeem:    redeem,
		}

		if err := collateralSrv.SetOperationStatus(ctx, adminID(cmd), mustString(cmd, "asset"), status); err != nil {
			cmd.PrintErrln("set status error:", err)
			return
		}

		cmd.Println("operation gates updated")
	},
}

func init() {
	rootCmd.AddCommand(addCollateralCmd)
	rootCmd.AddCommand(updateCollateralCmd)
	rootCmd.AddCommand(setStatusCmd)

	for _, cmd := range []*cobra.Command{addCollateralCmd, updateCollateralCmd, setStatusCmd} {
		cmd.Flags().String("admin", "", "acting admin user id")
		cmd.Flags().String("asset", "", "collateral asset id")
	}

	for _, cmd := range []*cobra.Command{addCollateralCmd, updateCollateralCmd} {
		cmd.Flags().String("min-debt", "", "minimum debt, CASH")
		cmd.Flags().Uint64("mcr", 0, "minimum collateral ratio, bps")
		cmd.Flags().Uint64("borrow-rate", 0, "borrow fee, bps")
		cmd.Flags().String("reserve", "", "liquidation reserve, CASH")
		cmd.Flags().Uint64("threshold", 0, "liquidation threshold, bps")
		cmd.Flags().Uint64("penalty", 0, "liquidation penalty, bps")
		cmd.Flags().Uint64("protocol-fee", 0, "protocol share of the penalty, bps")
		cmd.Flags().Uint64("redemption-fee", 0, "redemption fee, bps")
		cmd.Flags().Uint64("gratuity", 0, "redemption gratuity, bps")
		cmd.Flags().String("oracle", "", "oracle feed id")
		cmd.Flags().Int64("max-price-age", 0, "max quote age, seconds")
	}

	addCollateralCmd.Flags().String("symbol", "", "collateral symbol")
	addCollateralCmd.Flags().Int32("decimals", 8, "native token precision")

	updateCollateralCmd.Flags().Bool("enabled", true, "collateral enabled")

	setStatusCmd.Flags().Bool("open-trove", true, "allow open_trove")
	setStatusCmd.Flags().Bool("borrow", true, "allow borrow")
	setStatusCmd.Flags().Bool("deposit", true, "allow deposit")
	setStatusCmd.Flags().Bool("redeem", true, "allow redeem")
}
