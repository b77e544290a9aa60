package rest

import (
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/param"
	"moneymarket/handler/render"
)

func eventsHandler(events core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			From    uint64 `json:"from"`
			Account string `json:"account"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		var (
			list []*core.Event
			err  error
		)

		if params.Account != "" {
			list, err = events.ListByAccount(ctx, params.Account, params.From, limitOf(r))
		} else {
			list, err = events.List(ctx, params.From, limitOf(r))
		}

		if err != nil {
			render.Error(w, err)
			return
		}

		if list == nil {
			list = []*core.Event{}
		}

		render.JSON(w, list)
	}
}
