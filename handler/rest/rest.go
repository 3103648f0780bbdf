package rest

import (
	"context"
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/service/pool"

	"github.com/go-chi/chi"
)

// Pool read side of the lending pool
type Pool interface {
	Market(ctx context.Context, asset string) (*core.Market, error)
	Markets(ctx context.Context) ([]*core.Market, error)
	Valuate(ctx context.Context, account string) (*pool.Valuation, error)
	Events(ctx context.Context, query core.EventQuery) ([]*core.Event, error)
}

// Handle handle rest api request
func Handle(p Pool, models core.RateModels) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/markets", listMarketsHandler(p, models))
	router.Get("/markets/{asset}", marketHandler(p, models))
	router.Get("/accounts/{account}", accountHandler(p))
	router.Get("/events", listEventsHandler(p))

	return router
}
