package protocol

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/compound"
	"moneymarket/pkg/number"
	"moneymarket/store/ledger"

	"github.com/holiman/uint256"
)

// view run fn on a throwaway transaction at block. Markets read through it
// are accrued to block; nothing is committed.
func (p *Protocol) view(block int64, fn func(tx *ledger.Tx) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return fn(p.ledger.Begin(block))
}

// accrued market at block, without committing the accrual
func (p *Protocol) accrued(ctx context.Context, tx *ledger.Tx, symbol string) (*core.Market, error) {
	m, err := tx.MarketBySymbol(symbol)
	if err != nil {
		return nil, err
	}

	if m.AccrualBlock < tx.Block() {
		if err := p.markets.AccrueInterest(ctx, tx, m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (p *Protocol) accrueAll(ctx context.Context, tx *ledger.Tx) error {
	for _, id := range tx.Markets() {
		m, err := tx.Market(id)
		if err != nil {
			return err
		}

		if err := p.markets.AccrueInterest(ctx, tx, m); err != nil {
			return err
		}
	}

	return nil
}

// Params committed risk parameters
func (p *Protocol) Params() core.RiskParams {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.ledger.Params()
}

// Market snapshot of the market accrued to block
func (p *Protocol) Market(ctx context.Context, symbol string, block int64) (*core.MarketSnapshot, error) {
	var snapshot *core.MarketSnapshot
	err := p.view(block, func(tx *ledger.Tx) error {
		m, err := p.accrued(ctx, tx, symbol)
		if err != nil {
			return err
		}

		snapshot, err = p.markets.Snapshot(ctx, m)
		return err
	})

	return snapshot, err
}

// Markets snapshots of every market in creation order, accrued to block
func (p *Protocol) Markets(ctx context.Context, block int64) ([]*core.MarketSnapshot, error) {
	var snapshots []*core.MarketSnapshot
	err := p.view(block, func(tx *ledger.Tx) error {
		for _, id := range tx.Markets() {
			m, err := tx.Market(id)
			if err != nil {
				return err
			}

			if err := p.markets.AccrueInterest(ctx, tx, m); err != nil {
				return err
			}

			snapshot, err := p.markets.Snapshot(ctx, m)
			if err != nil {
				return err
			}

			snapshots = append(snapshots, snapshot)
		}

		return nil
	})

	return snapshots, err
}

// Price posted price of the market's underlying
func (p *Protocol) Price(ctx context.Context, symbol string) (*uint256.Int, error) {
	var price *uint256.Int
	err := p.view(0, func(tx *ledger.Tx) error {
		m, err := tx.MarketBySymbol(symbol)
		if err != nil {
			return err
		}

		price, err = p.comptroller.Price(ctx, tx, m)
		return err
	})

	return price, err
}

// AccountLiquidity liquidity or shortfall of address with every market
// accrued to block
func (p *Protocol) AccountLiquidity(ctx context.Context, address string, block int64) (*core.AccountLiquidity, error) {
	return p.HypotheticalLiquidity(ctx, address, block, "", nil, nil)
}

// HypotheticalLiquidity liquidity of address as if it redeemed redeemTokens
// and borrowed borrowAmount of symbol
func (p *Protocol) HypotheticalLiquidity(
	ctx context.Context,
	address string,
	block int64,
	symbol string,
	redeemTokens, borrowAmount *uint256.Int,
) (*core.AccountLiquidity, error) {
	var liquidity *core.AccountLiquidity
	err := p.view(block, func(tx *ledger.Tx) error {
		if err := p.accrueAll(ctx, tx); err != nil {
			return err
		}

		var modify *core.Market
		if symbol != "" {
			m, err := tx.MarketBySymbol(symbol)
			if err != nil {
				return err
			}
			modify = m
		}

		account, ok := tx.LookupAccount(address)
		if !ok {
			liquidity = &core.AccountLiquidity{}
			return nil
		}

		var err error
		liquidity, err = p.comptroller.GetHypotheticalAccountLiquidity(ctx, tx, account, modify, redeemTokens, borrowAmount)
		return err
	})

	return liquidity, err
}

// Positions every nonzero position and membership of address, accrued to block
func (p *Protocol) Positions(ctx context.Context, address string, block int64) ([]*core.AccountPosition, error) {
	var positions []*core.AccountPosition
	err := p.view(block, func(tx *ledger.Tx) error {
		account, ok := tx.LookupAccount(address)
		if !ok {
			return nil
		}

		for _, id := range tx.Markets() {
			m, err := tx.Market(id)
			if err != nil {
				return err
			}

			position := tx.Position(account, id)
			member := tx.IsMember(account, id)
			if position.IsZero() && !member {
				continue
			}

			if err := p.markets.AccrueInterest(ctx, tx, m); err != nil {
				return err
			}

			exchangeRate, err := compound.ExchangeRate(m)
			if err != nil {
				return err
			}

			supply, err := compound.TokensToUnderlying(&position.ClaimBalance, exchangeRate)
			if err != nil {
				return err
			}

			borrow, err := compound.BorrowBalance(position, m)
			if err != nil {
				return err
			}

			positions = append(positions, &core.AccountPosition{
				Address:    address,
				Market:     m.Symbol,
				Claims:     number.FromMantissa(&position.ClaimBalance, 0),
				Supply:     number.FromMantissa(supply, 0),
				Borrow:     number.FromMantissa(borrow, 0),
				Collateral: member,
			})
		}

		return nil
	})

	return positions, err
}

// AssetsIn markets address entered, in entry order
func (p *Protocol) AssetsIn(address string) []string {
	var symbols []string
	_ = p.view(0, func(tx *ledger.Tx) error {
		account, ok := tx.LookupAccount(address)
		if !ok {
			return nil
		}

		for _, id := range tx.AssetsIn(account) {
			if m, err := tx.Market(id); err == nil {
				symbols = append(symbols, m.Symbol)
			}
		}

		return nil
	})

	return symbols
}
