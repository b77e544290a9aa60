package hc

import (
	"net/http"
	"time"

	"moneymarket/core"
	"moneymarket/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle handle hc request
func Handle(ver string, blocks core.IBlockService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, blocks))
	return r
}

func handle(version string, blocks core.IBlockService) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)
		block, err := blocks.CurrentBlock(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"uptime":  uptime.String(),
			"version": version,
			"block":   block,
		})
	}
}
