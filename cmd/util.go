package cmd

import (
	"fmt"

	"cash/core"
	"cash/pkg/fixedpoint"
	"cash/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// adminID the acting admin, --admin flag or the first configured one.
func adminID(cmd *cobra.Command) string {
	if admin, _ := cmd.Flags().GetString("admin"); admin != "" {
		return admin
	}

	if len(cfg.Admins) > 0 {
		return cfg.Admins[0]
	}

	return ""
}

// parseUnits reads a human-readable amount flag and converts it to base units
// at the given precision. Empty flags parse to zero.
func parseUnits(cmd *cobra.Command, flag string, decimals int32) uint64 {
	v, err := cmd.Flags().GetString(flag)
	if err != nil {
		panic(err)
	}
	if v == "" {
		return 0
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(fmt.Sprintf("invalid %s: %s", flag, v))
	}

	units, ok := number.ToUnits(d, decimals)
	if !ok {
		panic(fmt.Sprintf("%s out of range: %s", flag, v))
	}

	return units
}

func parseDebtUnits(cmd *cobra.Command, flag string) uint64 {
	return parseUnits(cmd, flag, fixedpoint.DebtDecimals)
}

// collateralDecimals native precision of a registered collateral token
func collateralDecimals(cmd *cobra.Command, database *db.DB, assetID string) int32 {
	collateral, err := provideCollateralStore(database).Find(cmd.Context(), assetID)
	if err != nil {
		panic(err)
	}

	return collateral.Decimals
}

func mustString(cmd *cobra.Command, flag string) string {
	v, err := cmd.Flags().GetString(flag)
	if err != nil || v == "" {
		panic(fmt.Sprintf("missing %s", flag))
	}

	return v
}

func printOutcome(cmd *cobra.Command, outcome *core.LiquidationOutcome) {
	cmd.Println("debt repaid:", outcome.DebtRepaid)
	cmd.Println("collateral seized:", outcome.CollateralSeized)
	cmd.Println("liquidator received:", outcome.LiquidatorReceived)
	cmd.Println("protocol fee:", outcome.ProtocolFee)
	cmd.Println("owner refund:", outcome.OwnerRefund)
	cmd.Println("reserve released:", outcome.ReserveReleased)
	cmd.Println("closed:", outcome.Closed)
}
