package views

import (
	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

// Account liquidity in USD plus every position of the account
type Account struct {
	Address   string                  `json:"address"`
	Block     int64                   `json:"block"`
	Liquidity decimal.Decimal         `json:"liquidity"`
	Shortfall decimal.Decimal         `json:"shortfall"`
	AssetsIn  []string                `json:"assets_in"`
	Positions []*core.AccountPosition `json:"positions"`
}

// AccountView prices are USD per base unit scaled by 1e18, so liquidity is
// a 1e18 mantissa of USD
func AccountView(address string, block int64, l *core.AccountLiquidity, assetsIn []string, positions []*core.AccountPosition) Account {
	if assetsIn == nil {
		assetsIn = []string{}
	}
	if positions == nil {
		positions = []*core.AccountPosition{}
	}

	return Account{
		Address:   address,
		Block:     block,
		Liquidity: number.Exp(&l.Liquidity),
		Shortfall: number.Exp(&l.Shortfall),
		AssetsIn:  assetsIn,
		Positions: positions,
	}
}
