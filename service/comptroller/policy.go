package comptroller

import (
	"context"

	"moneymarket/core"
	fp "moneymarket/internal/compound"
	"moneymarket/pkg/compound"

	"github.com/holiman/uint256"
)

// MintAllowed market must be listed
func (c *Comptroller) MintAllowed(ctx context.Context, tx core.Ledger, market *core.Market, minter core.AccountID, amount *uint256.Int) error {
	return listed(market)
}

// RedeemAllowed redeeming collateral must not leave a shortfall. Claims of
// a market the account has not entered back nothing and redeem freely.
func (c *Comptroller) RedeemAllowed(ctx context.Context, tx core.Ledger, market *core.Market, redeemer core.AccountID, tokens *uint256.Int) error {
	if err := listed(market); err != nil {
		return err
	}

	if !tx.IsMember(redeemer, market.ID) {
		return nil
	}

	liquidity, err := c.GetHypotheticalAccountLiquidity(ctx, tx, redeemer, market, tokens, nil)
	if err != nil {
		return err
	}

	return compound.Require(liquidity.Shortfall.IsZero(), core.ErrInsufficientLiquidity)
}

// BorrowAllowed the new debt must be priced, under the cap and covered by
// collateral
func (c *Comptroller) BorrowAllowed(ctx context.Context, tx core.Ledger, market *core.Market, borrower core.AccountID, amount *uint256.Int) error {
	if err := listed(market); err != nil {
		return err
	}

	if _, err := c.Price(ctx, tx, market); err != nil {
		return err
	}

	if !market.BorrowCap.IsZero() {
		nextTotalBorrows, err := fp.Add(&market.TotalBorrows, amount)
		if err != nil {
			return err
		}

		if nextTotalBorrows.Gt(&market.BorrowCap) {
			return core.ErrBorrowCapReached
		}
	}

	liquidity, err := c.GetHypotheticalAccountLiquidity(ctx, tx, borrower, market, nil, amount)
	if err != nil {
		return err
	}

	return compound.Require(liquidity.Shortfall.IsZero(), core.ErrInsufficientLiquidity)
}

// RepayBorrowAllowed market must be listed
func (c *Comptroller) RepayBorrowAllowed(ctx context.Context, tx core.Ledger, market *core.Market, payer, borrower core.AccountID, amount *uint256.Int) error {
	return listed(market)
}

// LiquidateBorrowAllowed borrower must be underwater and repayAmount within
// the close factor of the debt
func (c *Comptroller) LiquidateBorrowAllowed(
	ctx context.Context,
	tx core.Ledger,
	borrowed, collateral *core.Market,
	liquidator, borrower core.AccountID,
	repayAmount *uint256.Int,
) error {
	if err := listed(borrowed); err != nil {
		return err
	}

	if err := listed(collateral); err != nil {
		return err
	}

	liquidity, err := c.GetAccountLiquidity(ctx, tx, borrower)
	if err != nil {
		return err
	}

	if liquidity.Shortfall.IsZero() {
		return core.ErrInsufficientShortfall
	}

	owed, err := compound.BorrowBalance(tx.Position(borrower, borrowed.ID), borrowed)
	if err != nil {
		return err
	}

	maxClose, err := fp.MulExp(&tx.Params().CloseFactor, owed)
	if err != nil {
		return err
	}

	return compound.Require(!repayAmount.Gt(maxClose), core.ErrRepayExceedsMax)
}

// SeizeAllowed both markets must be listed
func (c *Comptroller) SeizeAllowed(ctx context.Context, tx core.Ledger, collateral, borrowed *core.Market) error {
	if err := listed(collateral); err != nil {
		return err
	}

	return listed(borrowed)
}

// LiquidateCalculateSeizeTokens claims of collateral paid for repayAmount of
// borrowed, including the liquidation incentive
func (c *Comptroller) LiquidateCalculateSeizeTokens(ctx context.Context, tx core.Ledger, borrowed, collateral *core.Market, repayAmount *uint256.Int) (*uint256.Int, error) {
	priceBorrowed, err := c.Price(ctx, tx, borrowed)
	if err != nil {
		return nil, err
	}

	priceCollateral, err := c.Price(ctx, tx, collateral)
	if err != nil {
		return nil, err
	}

	exchangeRate, err := compound.ExchangeRate(collateral)
	if err != nil {
		return nil, err
	}

	return compound.SeizeTokens(repayAmount, &tx.Params().LiquidationIncentive, priceBorrowed, priceCollateral, exchangeRate)
}
