package rest

import (
	"context"
	"errors"
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/render"
	"moneymarket/service/operation"
	"moneymarket/service/protocol"

	"github.com/go-chi/chi"
	"github.com/spf13/cast"
)

const defaultLimit = 100

// Handle handle rest api request
func Handle(
	protocol *protocol.Protocol,
	operations *operation.Service,
	events core.EventStore,
	blocks core.IBlockService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Post("/operations", submitOperationHandler(operations))
	router.Get("/operations/{trace_id}", operationHandler(operations, events))
	router.Get("/markets", allMarketsHandler(protocol, blocks))
	router.Get("/markets/{symbol}", marketHandler(protocol, blocks))
	router.Get("/accounts/{address}", accountHandler(protocol, blocks))
	router.Get("/accounts/{address}/liquidity", accountHandler(protocol, blocks))
	router.Get("/events", eventsHandler(events))

	return router
}

// requestBlock the block query parameter, the current block if absent
func requestBlock(ctx context.Context, r *http.Request, blocks core.IBlockService) (int64, error) {
	if v := r.URL.Query().Get("block"); v != "" {
		return cast.ToInt64E(v)
	}

	return blocks.CurrentBlock(ctx)
}

func limitOf(r *http.Request) int {
	limit := cast.ToInt(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = defaultLimit
	}

	return limit
}
