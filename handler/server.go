package handler

import (
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/auth"
	"moneymarket/handler/render"
	"moneymarket/handler/rest"
	"moneymarket/service/operation"
	"moneymarket/service/protocol"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	protocol   *protocol.Protocol
	operations *operation.Service
	events     core.EventStore
	blocks     core.IBlockService
}

// New new server function
func New(
	protocol *protocol.Protocol,
	operations *operation.Service,
	events core.EventStore,
	blocks core.IBlockService,
) Server {
	return Server{
		protocol:   protocol,
		operations: operations,
		events:     events,
		blocks:     blocks,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(resetRoutePath)
	r.Use(auth.HandleAuthentication())
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.protocol, s.operations, s.events, s.blocks))
	return r
}

func resetRoutePath(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c := chi.RouteContext(ctx); c != nil {
			c.RoutePath = r.URL.Path
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
