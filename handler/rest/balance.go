package rest

import (
	"net/http"

	"cash/core"
	"cash/handler/render"
	"cash/handler/views"
	"cash/pkg/fixedpoint"
	"cash/pkg/number"

	"github.com/go-chi/chi"
)

func balanceHandler(system *core.System, collateralSrv core.ICollateralService, ledger core.CustodyLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		assetID := chi.URLParam(r, "asset")
		account := chi.URLParam(r, "user")

		amount, err := ledger.Balance(ctx, assetID, account)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		decimals := int32(fixedpoint.DebtDecimals)
		if assetID != system.CashAssetID {
			if collateral, err := collateralSrv.Find(ctx, assetID); err == nil {
				decimals = collateral.Decimals
			}
		}

		render.JSON(w, views.Balance{
			AssetID: assetID,
			Account: account,
			Amount:  number.FromUnits(amount, decimals),
		})
	}
}
