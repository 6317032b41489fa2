package cmd

import (
	"github.com/spf13/cobra"
)

var liquidateCmd = &cobra.Command{
	Use:   "liquidate",
	Short: "liquidate an undercollateralized trove, fully or by debt chunk",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		liquidationSrv := provideLiquidationService(database, system)

		liquidator := mustString(cmd, "liquidator")
		assetID := mustString(cmd, "asset")
		owner := mustString(cmd, "owner")

		debt := parseDebtUnits(cmd, "debt")
		if debt > 0 {
			outcome, err := liquidationSrv.PartialLiquidate(ctx, liquidator, assetID, owner, debt)
			if err != nil {
				cmd.PrintErrln("partial liquidation error:", err)
				return
			}

			printOutcome(cmd, outcome)
			return
		}

		outcome, err := liquidationSrv.Liquidate(ctx, liquidator, assetID, owner)
		if err != nil {
			cmd.PrintErrln("liquidation error:", err)
			return
		}

		printOutcome(cmd, outcome)
	},
}

func init() {
	rootCmd.AddCommand(liquidateCmd)

	liquidateCmd.Flags().String("liquidator", "", "liquidating user id")
	liquidateCmd.Flags().String("asset", "", "collateral asset id")
	liquidateCmd.Flags().String("owner", "", "trove owner user id")
	liquidateCmd.Flags().String("debt", "", "CASH chunk to repay, empty for full liquidation")
}
