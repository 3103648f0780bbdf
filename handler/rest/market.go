package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/views"

	"github.com/go-chi/chi"
)

func listMarketsHandler(p Pool, models core.RateModels) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		markets, err := p.Markets(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		marketViews := make([]views.Market, 0, len(markets))
		for _, m := range markets {
			marketViews = append(marketViews, views.MarketView(m, models))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(p Pool, models core.RateModels) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		market, err := p.Market(r.Context(), chi.URLParam(r, "asset"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.MarketView(market, models))
	}
}
