package rest

import (
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/param"
	"moneymarket/handler/render"
	"moneymarket/handler/views"
	"moneymarket/service/protocol"

	"github.com/holiman/uint256"
)

// accountHandler liquidity and positions of an address. With market plus
// redeem_tokens or borrow_amount the liquidity is the hypothetical one.
func accountHandler(protocol *protocol.Protocol, blocks core.IBlockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address      string `json:"address" valid:"required"`
			Market       string `json:"market"`
			RedeemTokens string `json:"redeem_tokens" valid:"int"`
			BorrowAmount string `json:"borrow_amount" valid:"int"`
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

		var redeemTokens, borrowAmount *uint256.Int
		if params.Market != "" {
			if redeemTokens, err = optionalUint(params.RedeemTokens); err != nil {
				render.BadRequest(w, err)
				return
			}

			if borrowAmount, err = optionalUint(params.BorrowAmount); err != nil {
				render.BadRequest(w, err)
				return
			}
		}

		liquidity, err := protocol.HypotheticalLiquidity(ctx, params.Address, block, params.Market, redeemTokens, borrowAmount)
		if err != nil {
			render.Error(w, err)
			return
		}

		positions, err := protocol.Positions(ctx, params.Address, block)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AccountView(params.Address, block, liquidity, protocol.AssetsIn(params.Address), positions))
	}
}

func optionalUint(v string) (*uint256.Int, error) {
	if v == "" {
		return nil, nil
	}

	return uint256.FromDecimal(v)
}
