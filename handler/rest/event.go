package rest

import (
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/views"

	"github.com/spf13/cast"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

func listEventsHandler(p Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		query := core.EventQuery{
			Asset:   q.Get("asset"),
			Account: q.Get("account"),
			Limit:   defaultEventLimit,
		}

		if v := q.Get("offset"); v != "" {
			offset, err := cast.ToInt64E(v)
			if err != nil || offset < 0 {
				render.BadRequest(w, errors.New("invalid offset"))
				return
			}

			query.Offset = offset
		}

		if v := q.Get("limit"); v != "" {
			limit, err := cast.ToIntE(v)
			if err != nil || limit <= 0 {
				render.BadRequest(w, errors.New("invalid limit"))
				return
			}

			if limit > maxEventLimit {
				limit = maxEventLimit
			}

			query.Limit = limit
		}

		events, err := p.Events(r.Context(), query)
		if err != nil {
			render.Error(w, err)
			return
		}

		eventViews := make([]views.Event, 0, len(events))
		for _, e := range events {
			eventViews = append(eventViews, views.EventView(e))
		}

		render.JSON(w, eventViews)
	}
}
