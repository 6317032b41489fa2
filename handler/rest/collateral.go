package rest

import (
	"errors"
	"net/http"

	"cash/core"
	"cash/handler/render"
	"cash/handler/views"
	"cash/pkg/fixedpoint"
	"cash/pkg/number"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func allCollateralsHandler(collateralStr core.ICollateralStore, oracle core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		collaterals, err := collateralStr.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		collateralViews := make([]*views.Collateral, 0, len(collaterals))
		for _, c := range collaterals {
			collateralViews = append(collateralViews, getCollateralView(r, c, oracle))
		}

		render.JSON(w, collateralViews)
	}
}

func collateralHandler(collateralSrv core.ICollateralService, oracle core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		collateral, err := collateralSrv.Find(ctx, chi.URLParam(r, "asset"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, getCollateralView(r, collateral, oracle))
	}
}

func priceHandler(collateralSrv core.ICollateralService, oracle core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		collateral, err := collateralSrv.Valid(ctx, chi.URLParam(r, "asset"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		price, err := oracle.GetPrice(ctx, collateral)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{
			"oracle_id": collateral.OracleID,
			"price":     number.FromUnits(price, fixedpoint.DebtDecimals),
		})
	}
}

func validHandler(collateralSrv core.ICollateralService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := collateralSrv.Valid(r.Context(), chi.URLParam(r, "asset"))
		render.JSON(w, render.H{"valid": err == nil})
	}
}

// previewHandler reports the collateral ratio a position would have at the
// latest price, without touching any state.
func previewHandler(collateralSrv core.ICollateralService, oracle core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		collateral, err := collateralSrv.Valid(ctx, chi.URLParam(r, "asset"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		collateralAmount, err := decimal.NewFromString(r.URL.Query().Get("collateral"))
		if err != nil {
			render.BadRequest(w, errors.New("invalid collateral amount"))
			return
		}
		debtAmount, err := decimal.NewFromString(r.URL.Query().Get("debt"))
		if err != nil {
			render.BadRequest(w, errors.New("invalid debt amount"))
			return
		}

		collateralUnits, ok := number.ToUnits(collateralAmount, collateral.Decimals)
		if !ok {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}
		debtUnits, ok := number.ToUnits(debtAmount, fixedpoint.DebtDecimals)
		if !ok {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		price, err := oracle.GetPrice(ctx, collateral)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		value, err := fixedpoint.Value(collateralUnits, price, collateral.Decimals)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		ratio, _ := fixedpoint.RatioBps(value, debtUnits)
		render.JSON(w, views.RatioPreview{
			Collateral: collateralAmount,
			Debt:       debtAmount,
			Value:      number.FromUnits(value, fixedpoint.DebtDecimals),
			Ratio:      ratio,
			Sufficient: fixedpoint.CheckRatio(value, debtUnits, collateral.MCR) == nil,
		})
	}
}

func getCollateralView(r *http.Request, collateral *core.Collateral, oracle core.IPriceOracleService) *views.Collateral {
	view := views.Collateral{
		Collateral: *collateral,
		Price:      decimal.Zero,
		Status:     collateral.Status(),
	}

	if price, err := oracle.GetPrice(r.Context(), collateral); err == nil {
		view.Price = number.FromUnits(price, fixedpoint.DebtDecimals)
	}

	return &view
}
