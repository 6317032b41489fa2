package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

// admin fallback for environments without a reachable price endpoint
var setPriceCmd = &cobra.Command{
	Use:   "set-price",
	Short: "write a quote for an oracle feed",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		oracleSrv := provideOracleService(database, system)

		price := parseDebtUnits(cmd, "price")
		if err := oracleSrv.SetPrice(ctx, adminID(cmd), mustString(cmd, "oracle"), price, time.Now()); err != nil {
			cmd.PrintErrln("set price error:", err)
			return
		}

		cmd.Println("price updated")
	},
}

func init() {
	rootCmd.AddCommand(setPriceCmd)

	setPriceCmd.Flags().String("admin", "", "acting admin user id")
	setPriceCmd.Flags().String("oracle", "", "oracle feed id")
	setPriceCmd.Flags().String("price", "", "quote in CASH terms")
}
