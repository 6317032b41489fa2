package rest

import (
	"errors"
	"net/http"

	"cash/core"
	"cash/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	system *core.System,
	collateralSrv core.ICollateralService,
	collateralStr core.ICollateralStore,
	troveStr core.ITroveStore,
	statStr core.IStatStore,
	providerStr core.IProviderStore,
	ledger core.CustodyLedger,
	ledgerStr core.ILedgerStore,
	oracle core.IPriceOracleService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/collaterals", allCollateralsHandler(collateralStr, oracle))
	router.Get("/collaterals/{asset}", collateralHandler(collateralSrv, oracle))
	router.Get("/collaterals/{asset}/price", priceHandler(collateralSrv, oracle))
	router.Get("/collaterals/{asset}/valid", validHandler(collateralSrv))
	router.Get("/collaterals/{asset}/preview", previewHandler(collateralSrv, oracle))
	router.Get("/troves/{asset}/{user}", troveHandler(collateralSrv, troveStr, oracle))
	router.Get("/stats", allStatsHandler(collateralStr, statStr, troveStr))
	router.Get("/stats/{asset}", statHandler(collateralSrv, statStr, troveStr))
	router.Get("/stats/{asset}/check", checkStatHandler(collateralSrv, statStr, troveStr))
	router.Get("/providers/{asset}/{user}", providerHandler(providerStr))
	router.Get("/balances/{asset}/{user}", balanceHandler(system, collateralSrv, ledger))
	router.Get("/journal/{trace}", journalHandler(ledgerStr))

	return router
}
