package comptroller

import (
	"context"

	"moneymarket/core"
	fp "moneymarket/internal/compound"
	"moneymarket/pkg/compound"

	"github.com/holiman/uint256"
)

// GetAccountLiquidity excess collateral or shortfall of account, in USD
// mantissa. Every considered market is accrued first.
func (c *Comptroller) GetAccountLiquidity(ctx context.Context, tx core.Ledger, account core.AccountID) (*core.AccountLiquidity, error) {
	return c.GetHypotheticalAccountLiquidity(ctx, tx, account, nil, nil, nil)
}

// GetHypotheticalAccountLiquidity liquidity as if account redeemed
// redeemTokens of modify's claims and borrowed borrowAmount of it.
//
// Collateral counts only entered markets, debt counts every market the
// account owes on, entered or not.
func (c *Comptroller) GetHypotheticalAccountLiquidity(
	ctx context.Context,
	tx core.Ledger,
	account core.AccountID,
	modify *core.Market,
	redeemTokens, borrowAmount *uint256.Int,
) (*core.AccountLiquidity, error) {
	var (
		sumCollateral = new(uint256.Int)
		sumBorrows    = new(uint256.Int)
	)

	for _, id := range c.consideredMarkets(tx, account, modify, borrowAmount) {
		market, err := tx.Market(id)
		if err != nil {
			return nil, err
		}

		if err := c.markets.AccrueInterest(ctx, tx, market); err != nil {
			return nil, err
		}

		price, err := c.Price(ctx, tx, market)
		if err != nil {
			return nil, err
		}

		owed, err := compound.BorrowBalance(tx.Position(account, id), market)
		if err != nil {
			return nil, err
		}

		debt, err := fp.MulExp(price, owed)
		if err != nil {
			return nil, err
		}

		if sumBorrows, err = fp.Add(sumBorrows, debt); err != nil {
			return nil, err
		}

		isModified := modify != nil && modify.ID == id
		if isModified && borrowAmount != nil && !borrowAmount.IsZero() {
			effect, err := fp.MulExp(price, borrowAmount)
			if err != nil {
				return nil, err
			}

			if sumBorrows, err = fp.Add(sumBorrows, effect); err != nil {
				return nil, err
			}
		}

		if !tx.IsMember(account, id) {
			continue
		}

		exchangeRate, err := compound.ExchangeRate(market)
		if err != nil {
			return nil, err
		}

		// collateral_factor * exchange_rate * price, USD per claim token
		tokensToDenom, err := fp.MulExp3(&market.CollateralFactor, exchangeRate, price)
		if err != nil {
			return nil, err
		}

		collateral, err := fp.MulExp(tokensToDenom, &tx.Position(account, id).ClaimBalance)
		if err != nil {
			return nil, err
		}

		if sumCollateral, err = fp.Add(sumCollateral, collateral); err != nil {
			return nil, err
		}

		if isModified && redeemTokens != nil && !redeemTokens.IsZero() {
			effect, err := fp.MulExp(tokensToDenom, redeemTokens)
			if err != nil {
				return nil, err
			}

			if sumBorrows, err = fp.Add(sumBorrows, effect); err != nil {
				return nil, err
			}
		}
	}

	var liquidity core.AccountLiquidity
	if sumCollateral.Gt(sumBorrows) {
		liquidity.Liquidity.Sub(sumCollateral, sumBorrows)
	} else {
		liquidity.Shortfall.Sub(sumBorrows, sumCollateral)
	}

	return &liquidity, nil
}

// consideredMarkets entered markets, then markets with debt, then the
// market about to be borrowed from
func (c *Comptroller) consideredMarkets(tx core.Ledger, account core.AccountID, modify *core.Market, borrowAmount *uint256.Int) []core.MarketID {
	seen := map[core.MarketID]bool{}
	var ids []core.MarketID
	add := func(id core.MarketID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, id := range tx.AssetsIn(account) {
		add(id)
	}

	for _, id := range tx.Markets() {
		if !tx.Position(account, id).BorrowPrincipal.IsZero() {
			add(id)
		}
	}

	if modify != nil && borrowAmount != nil && !borrowAmount.IsZero() {
		add(modify.ID)
	}

	return ids
}
