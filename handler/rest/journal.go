package rest

import (
	"net/http"

	"cash/core"
	"cash/handler/render"

	"github.com/go-chi/chi"
)

func journalHandler(ledgerStr core.ILedgerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		entries, err := ledgerStr.ListJournal(ctx, chi.URLParam(r, "trace"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, entries)
	}
}
