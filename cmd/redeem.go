package cmd

import (
	"cash/pkg/fixedpoint"
	"cash/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var redeemCmd = &cobra.Command{
	Use:   "redeem",
	Short: "swap CASH for provider collateral at face value",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		redemptionSrv := provideRedemptionService(database, system)

		redeemer := mustString(cmd, "redeemer")
		assetID := mustString(cmd, "asset")
		decimals := collateralDecimals(cmd, database, assetID)

		providers, _ := cmd.Flags().GetStringSlice("provider")
		amounts, _ := cmd.Flags().GetStringSlice("amount")
		minOuts, _ := cmd.Flags().GetStringSlice("min-out")

		cashAmounts := make([]uint64, len(amounts))
		for i, a := range amounts {
			cashAmounts[i] = toUnits(a, fixedpoint.DebtDecimals)
		}
		minCollateralOuts := make([]uint64, len(minOuts))
		for i, m := range minOuts {
			minCollateralOuts[i] = toUnits(m, decimals)
		}

		if len(providers) == 1 && len(cashAmounts) == 1 {
			var minOut uint64
			if len(minCollateralOuts) == 1 {
				minOut = minCollateralOuts[0]
			}

			outcome, err := redemptionSrv.Redeem(ctx, redeemer, assetID, providers[0], cashAmounts[0], minOut)
			if err != nil {
				cmd.PrintErrln("redeem error:", err)
				return
			}

			cmd.Println("redeemed", number.FromUnits(outcome.DebtRedeemed, fixedpoint.DebtDecimals), "CASH for",
				number.FromUnits(outcome.CollateralOut, decimals), "collateral")
			return
		}

		outcomes, err := redemptionSrv.RedeemMultiple(ctx, redeemer, assetID, providers, cashAmounts, minCollateralOuts)
		if err != nil {
			cmd.PrintErrln("redeem error:", err)
			return
		}

		for i, outcome := range outcomes {
			cmd.Println(providers[i], "redeemed", number.FromUnits(outcome.DebtRedeemed, fixedpoint.DebtDecimals), "CASH for",
				number.FromUnits(outcome.CollateralOut, decimals), "collateral")
		}
	},
}

func toUnits(v string, decimals int32) uint64 {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic("invalid amount: " + v)
	}

	units, ok := number.ToUnits(d, decimals)
	if !ok {
		panic("amount out of range: " + v)
	}

	return units
}

func init() {
	rootCmd.AddCommand(redeemCmd)

	redeemCmd.Flags().String("redeemer", "", "redeeming user id")
	redeemCmd.Flags().String("asset", "", "collateral asset id")
	redeemCmd.Flags().StringSlice("provider", nil, "provider user id, repeatable")
	redeemCmd.Flags().StringSlice("amount", nil, "CASH amount per provider, repeatable")
	redeemCmd.Flags().StringSlice("min-out", nil, "minimum collateral out per provider, repeatable")
}
