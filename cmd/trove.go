package cmd

import (
	"cash/pkg/fixedpoint"
	"cash/pkg/number"

	"github.com/spf13/cobra"
)

var openTroveCmd = &cobra.Command{
	Use:   "open-trove",
	Short: "open a trove, locking collateral and minting CASH",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		troveSrv := provideTroveService(database, system)

		assetID := mustString(cmd, "asset")
		decimals := collateralDecimals(cmd, database, assetID)

		minted, err := troveSrv.Open(
			ctx,
			mustString(cmd, "user"),
			assetID,
			parseUnits(cmd, "collateral", decimals),
			parseDebtUnits(cmd, "debt"),
		)
		if err != nil {
			cmd.PrintErrln("open trove error:", err)
			return
		}

		cmd.Println("minted", number.FromUnits(minted, fixedpoint.DebtDecimals), "CASH")
	},
}

var adjustTroveCmd = &cobra.Command{
	Use:   "adjust-trove",
	Short: "deposit collateral and/or mint more CASH",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		troveSrv := provideTroveService(database, system)

		assetID := mustString(cmd, "asset")
		decimals := collateralDecimals(cmd, database, assetID)

		err := troveSrv.DepositOrMint(
			ctx,
			mustString(cmd, "user"),
			assetID,
			parseUnits(cmd, "collateral", decimals),
			parseDebtUnits(cmd, "debt"),
		)
		if err != nil {
			cmd.PrintErrln("adjust trove error:", err)
			return
		}

		cmd.Println("trove adjusted")
	},
}

var repayTroveCmd = &cobra.Command{
	Use:   "repay-trove",
	Short: "repay CASH and/or withdraw collateral",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		troveSrv := provideTroveService(database, system)

		assetID := mustString(cmd, "asset")
		decimals := collateralDecimals(cmd, database, assetID)

		err := troveSrv.RepayOrWithdraw(
			ctx,
			mustString(cmd, "user"),
			assetID,
			parseUnits(cmd, "withdraw", decimals),
			parseDebtUnits(cmd, "repay"),
		)
		if err != nil {
			cmd.PrintErrln("repay trove error:", err)
			return
		}

		cmd.Println("trove adjusted")
	},
}

var closeTroveCmd = &cobra.Command{
	Use:   "close-trove",
	Short: "repay all debt and reclaim collateral",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		troveSrv := provideTroveService(database, system)

		if err := troveSrv.Close(ctx, mustString(cmd, "user"), mustString(cmd, "asset")); err != nil {
			cmd.PrintErrln("close trove error:", err)
			return
		}

		cmd.Println("trove closed")
	},
}

var setProviderCmd = &cobra.Command{
	Use:   "set-provider",
	Short: "toggle the redemption provider flag",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		providerSrv := provideProviderService(database)

		enabled, _ := cmd.Flags().GetBool("enabled")
		if err := providerSrv.Register(ctx, mustString(cmd, "user"), mustString(cmd, "asset"), enabled); err != nil {
			cmd.PrintErrln("set provider error:", err)
			return
		}

		cmd.Println("provider flag updated")
	},
}

func init() {
	rootCmd.AddCommand(openTroveCmd)
	rootCmd.AddCommand(adjustTroveCmd)
	rootCmd.AddCommand(repayTroveCmd)
	rootCmd.AddCommand(closeTroveCmd)
	rootCmd.AddCommand(setProviderCmd)

	for _, cmd := range []*cobra.Command{openTroveCmd, adjustTroveCmd, repayTroveCmd, closeTroveCmd, setProviderCmd} {
		cmd.Flags().String("asset", "", "collateral asset id")
		cmd.Flags().String("user", "", "trove owner user id")
	}

	for _, cmd := range []*cobra.Command{openTroveCmd, adjustTroveCmd} {
		cmd.Flags().String("collateral", "", "collateral amount, human readable")
		cmd.Flags().String("debt", "", "CASH amount")
	}

	repayTroveCmd.Flags().String("withdraw", "", "collateral amount, human readable")
	repayTroveCmd.Flags().String("repay", "", "CASH amount")

	setProviderCmd.Flags().Bool("enabled", true, "opt in or out of redemptions")
}
