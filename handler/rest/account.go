package rest

import (
	"net/http"

	"lending/handler/render"
	"lending/handler/views"

	"github.com/go-chi/chi"
)

func accountHandler(p Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		valuation, err := p.Valuate(r.Context(), chi.URLParam(r, "account"))
		if err != nil {
			render.Error(w, err)
			return
		}

		view, err := views.AccountView(valuation)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, view)
	}
}
