package rest

import (
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/param"
	"moneymarket/handler/render"
	"moneymarket/handler/views"
	"moneymarket/service/protocol"

	"github.com/twitchtv/twirp"
)

func allMarketsHandler(protocol *protocol.Protocol, blocks core.IBlockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		block, err := requestBlock(ctx, r, blocks)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		markets, err := protocol.Markets(ctx, block)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Markets(markets))
	}
}

func marketHandler(protocol *protocol.Protocol, blocks core.IBlockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Symbol string `json:"symbol" valid:"required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		block, err := requestBlock(ctx, r, blocks)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		market, err := protocol.Market(ctx, params.Symbol, block)
		if err != nil {
			if core.CodeOf(err) == core.ErrMarketNotFound {
				render.Error(w, twirp.NotFoundError("market not found"))
				return
			}

			render.Error(w, err)
			return
		}

		render.JSON(w, views.MarketView(market))
	}
}
