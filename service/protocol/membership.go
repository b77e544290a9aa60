package protocol

import (
	"context"

	"moneymarket/core"
	"moneymarket/store/ledger"
)

func (p *Protocol) handleEnterMarkets(ctx context.Context, tx *ledger.Tx, sender string, action *core.EnterMarketsAction) error {
	if len(action.Markets) == 0 {
		return core.ErrInvalidAmount
	}

	markets := make([]*core.Market, 0, len(action.Markets))
	for _, symbol := range action.Markets {
		m, err := listedMarket(tx, symbol)
		if err != nil {
			return err
		}

		markets = append(markets, m)
	}

	return p.comptroller.EnterMarkets(ctx, tx, tx.Account(sender), markets)
}

func (p *Protocol) handleExitMarket(ctx context.Context, tx *ledger.Tx, sender string, action *core.ExitMarketAction) error {
	market, err := tx.MarketBySymbol(action.Market)
	if err != nil {
		return core.ErrMarketNotListed
	}

	account, ok := tx.LookupAccount(sender)
	if !ok {
		return nil
	}

	return p.comptroller.ExitMarket(ctx, tx, account, market)
}

func (p *Protocol) handleAccrueInterest(ctx context.Context, tx *ledger.Tx, sender string, action *core.AccrueInterestAction) error {
	market, err := listedMarket(tx, action.Market)
	if err != nil {
		return err
	}

	return p.markets.AccrueInterest(ctx, tx, market)
}
