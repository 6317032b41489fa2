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

func troveHandler(collateralSrv core.ICollateralService, troveStr core.ITroveStore, oracle core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		collateral, err := collateralSrv.Find(ctx, chi.URLParam(r, "asset"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		trove, err := troveStr.Find(ctx, collateral.AssetID, chi.URLParam(r, "user"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		view := views.Trove{
			Trove:            *trove,
			CollateralAmount: number.FromUnits(trove.Collateral, collateral.Decimals),
			DebtAmount:       number.FromUnits(trove.Debt, fixedpoint.DebtDecimals),
		}

		if price, err := oracle.GetPrice(ctx, collateral); err == nil {
			if value, err := fixedpoint.Value(trove.Collateral, price, collateral.Decimals); err == nil {
				view.Ratio, _ = fixedpoint.RatioBps(value, trove.Debt)
			}
		}

		render.JSON(w, &view)
	}
}
