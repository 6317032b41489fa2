package rest

import (
	"net/http"

	"cash/core"
	"cash/handler/render"

	"github.com/go-chi/chi"
)

func providerHandler(providerStr core.IProviderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		enabled, err := providerStr.Enabled(ctx, chi.URLParam(r, "asset"), chi.URLParam(r, "user"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"enabled": enabled})
	}
}
