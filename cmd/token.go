package cmd

import (
	"strings"

	"cash/core"
	"cash/pkg/fixedpoint"
	"cash/pkg/id"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

var addTokenCmd = &cobra.Command{
	Use:   "add-token",
	Short: "register a token on the custody ledger",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		custody := provideLedgerService(database)

		assetID := mustString(cmd, "asset")
		symbol := strings.ToUpper(mustString(cmd, "symbol"))
		if err := custody.RegisterToken(ctx, assetID, symbol); err != nil {
			cmd.PrintErrln("add token error:", err)
			return
		}

		cmd.Println("token", symbol, "registered")
	},
}

// faucet for test and bootstrap environments
var mintTokenCmd = &cobra.Command{
	Use:   "mint-token",
	Short: "mint ledger balance to a user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		custody := provideLedgerService(database)

		assetID := mustString(cmd, "asset")
		user := mustString(cmd, "user")

		decimals := int32(fixedpoint.DebtDecimals)
		if assetID != cfg.CashAssetID {
			// not necessarily a collateral yet, fall back to the flag
			if collateral, err := provideCollateralStore(database).Find(ctx, assetID); err == nil {
				decimals = collateral.Decimals
			} else {
				decimals, _ = cmd.Flags().GetInt32("decimals")
			}
		}

		amount := parseUnits(cmd, "amount", decimals)
		if amount == 0 {
			cmd.PrintErrln("mint token error:", core.ErrInvalidAmount)
			return
		}

		err := database.Tx(func(tx *db.DB) error {
			return custody.Mint(ctx, tx, assetID, user, amount, core.JournalReasonFaucet, id.GenTraceID())
		})
		if err != nil {
			cmd.PrintErrln("mint token error:", err)
			return
		}

		cmd.Println("minted", amount, "base units to", user)
	},
}

func init() {
	rootCmd.AddCommand(addTokenCmd)
	rootCmd.AddCommand(mintTokenCmd)

	addTokenCmd.Flags().String("asset", "", "asset id")
	addTokenCmd.Flags().String("symbol", "", "token symbol")

	mintTokenCmd.Flags().String("asset", "", "asset id")
	mintTokenCmd.Flags().String("user", "", "receiving user id")
	mintTokenCmd.Flags().String("amount", "", "amount, human readable")
	mintTokenCmd.Flags().Int32("decimals", 8, "token precision when not a registered collateral")
}
