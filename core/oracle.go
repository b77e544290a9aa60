package core

import (
	"context"
	"time"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// PriceOracle USD price of one base unit of a market's underlying, scaled
// by 1e18. A missing price is ErrPriceUnavailable or zero.
type PriceOracle interface {
	Name() string
	GetUnderlyingPrice(ctx context.Context, market *Market) (*uint256.Int, error)
}

// PriceSetter an oracle fed by admin operations
type PriceSetter interface {
	PriceOracle
	SetUnderlyingPrice(ctx context.Context, market *Market, price *uint256.Int) error
}

// PriceTicker price ticker
type PriceTicker struct {
	Provider  string          `json:"provider,omitempty"`
	Symbol    string          `json:"symbol,omitempty"`
	Price     decimal.Decimal `json:"price,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
}

// IPriceTickerService pulls external tickers
type IPriceTickerService interface {
	PullPriceTicker(ctx context.Context, symbol string, t time.Time) (*PriceTicker, error)
}
