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

func allStatsHandler(collateralStr core.ICollateralStore, statStr core.IStatStore, troveStr core.ITroveStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		collaterals, err := collateralStr.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		statViews := make([]*views.Stat, 0, len(collaterals))
		for _, c := range collaterals {
			view, err := getStatView(r, c, statStr, troveStr)
			if err != nil {
				render.BadRequest(w, err)
				return
			}

			statViews = append(statViews, view)
		}

		render.JSON(w, statViews)
	}
}

func statHandler(collateralSrv core.ICollateralService, statStr core.IStatStore, troveStr core.ITroveStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		collateral, err := collateralSrv.Find(ctx, chi.URLParam(r, "asset"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		view, err := getStatView(r, collateral, statStr, troveStr)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, view)
	}
}

// checkStatHandler recomputes the totals from the active trove rows and
// reports whether they match the running stat.
func checkStatHandler(collateralSrv core.ICollateralService, statStr core.IStatStore, troveStr core.ITroveStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		collateral, err := collateralSrv.Find(ctx, chi.URLParam(r, "asset"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		stat, err := statStr.Find(ctx, collateral.AssetID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		troves, err := troveStr.FindByAsset(ctx, collateral.AssetID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		var totalCollateral, totalDebt uint64
		for _, trove := range troves {
			if totalCollateral, err = fixedpoint.Add(totalCollateral, trove.Collateral); err != nil {
				render.BadRequest(w, err)
				return
			}
			if totalDebt, err = fixedpoint.Add(totalDebt, trove.Debt); err != nil {
				render.BadRequest(w, err)
				return
			}
		}

		render.JSON(w, views.StatCheck{
			AssetID:            collateral.AssetID,
			RecordedCollateral: stat.TotalCollateral,
			RecordedDebt:       stat.TotalDebt,
			ComputedCollateral: totalCollateral,
			ComputedDebt:       totalDebt,
			ActiveTroves:       int64(len(troves)),
			Consistent:         totalCollateral == stat.TotalCollateral && totalDebt == stat.TotalDebt,
		})
	}
}

func getStatView(r *http.Request, collateral *core.Collateral, statStr core.IStatStore, troveStr core.ITroveStore) (*views.Stat, error) {
	ctx := r.Context()

	stat, err := statStr.Find(ctx, collateral.AssetID)
	if err != nil {
		return nil, err
	}
	stat.AssetID = collateral.AssetID

	count, err := troveStr.CountActive(ctx, collateral.AssetID)
	if err != nil {
		return nil, err
	}

	return &views.Stat{
		TotalStat:             *stat,
		TotalCollateralAmount: number.FromUnits(stat.TotalCollateral, collateral.Decimals),
		TotalDebtAmount:       number.FromUnits(stat.TotalDebt, fixedpoint.DebtDecimals),
		ActiveTroves:          count,
	}, nil
}
