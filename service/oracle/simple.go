package oracle

import (
	"context"
	"sync"

	"moneymarket/core"

	"github.com/holiman/uint256"
)

// SimpleName name of the admin fed oracle
const SimpleName = "simple"

// SimplePriceOracle price table keyed by market symbol, fed by set price
// operations
type SimplePriceOracle struct {
	name   string
	mu     sync.RWMutex
	prices map[string]uint256.Int
}

// NewSimple empty price table
func NewSimple(name string) *SimplePriceOracle {
	if name == "" {
		name = SimpleName
	}

	return &SimplePriceOracle{
		name:   name,
		prices: map[string]uint256.Int{},
	}
}

var _ core.PriceSetter = (*SimplePriceOracle)(nil)

// Name oracle name
func (o *SimplePriceOracle) Name() string {
	return o.name
}

// GetUnderlyingPrice ErrPriceUnavailable until a price is posted
func (o *SimplePriceOracle) GetUnderlyingPrice(ctx context.Context, market *core.Market) (*uint256.Int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	price, ok := o.prices[market.Symbol]
	if !ok || price.IsZero() {
		return nil, core.ErrPriceUnavailable
	}

	return price.Clone(), nil
}

// SetUnderlyingPrice zero removes the price
func (o *SimplePriceOracle) SetUnderlyingPrice(ctx context.Context, market *core.Market, price *uint256.Int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if price.IsZero() {
		delete(o.prices, market.Symbol)
		return nil
	}

	o.prices[market.Symbol] = *price
	return nil
}
