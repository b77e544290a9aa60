package comptroller

import (
	"context"
	"fmt"

	"moneymarket/core"

	"github.com/holiman/uint256"
)

// Comptroller risk engine: listing, collateral factors, membership and the
// liquidity checks guarding every operation that adds risk.
type Comptroller struct {
	markets core.IMarketService
	oracles map[string]core.PriceOracle
}

// New comptroller able to switch between the given oracles
func New(markets core.IMarketService, oracles ...core.PriceOracle) *Comptroller {
	c := &Comptroller{
		markets: markets,
		oracles: make(map[string]core.PriceOracle, len(oracles)),
	}

	for _, o := range oracles {
		c.oracles[o.Name()] = o
	}

	return c
}

// Oracle the active price oracle
func (c *Comptroller) Oracle(tx core.Ledger) (core.PriceOracle, error) {
	oracle, ok := c.oracles[tx.Params().Oracle]
	if !ok {
		return nil, core.ErrPriceUnavailable
	}

	return oracle, nil
}

// Price nonzero price of the market's underlying
func (c *Comptroller) Price(ctx context.Context, tx core.Ledger, market *core.Market) (*uint256.Int, error) {
	oracle, err := c.Oracle(tx)
	if err != nil {
		return nil, err
	}

	price, err := oracle.GetUnderlyingPrice(ctx, market)
	if err != nil {
		if code := core.CodeOf(err); code == core.ErrPriceUnavailable {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %s", core.ErrPriceUnavailable, err.Error())
	}

	if price == nil || price.IsZero() {
		return nil, core.ErrPriceUnavailable
	}

	return price, nil
}

// listed market must be listed
func listed(market *core.Market) error {
	if !market.IsListed {
		return core.ErrMarketNotListed
	}

	return nil
}
