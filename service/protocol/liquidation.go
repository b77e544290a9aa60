package protocol

import (
	"context"

	"moneymarket/core"
	"moneymarket/store/ledger"

	"github.com/fox-one/pkg/logger"
)

// handleLiquidateBorrow sender repays part of an underwater borrower's debt
// and receives the borrower's collateral claims plus the incentive. Repay,
// seize and the transfer commit together or not at all.
func (p *Protocol) handleLiquidateBorrow(ctx context.Context, tx *ledger.Tx, sender string, action *core.LiquidateBorrowAction) error {
	log := logger.FromContext(ctx).
		WithField("borrower", action.Borrower).
		WithField("market", action.Market).
		WithField("collateral", action.Collateral)

	amount, err := parseAmount(action.Amount)
	if err != nil {
		return err
	}

	if action.Borrower == sender {
		return core.ErrLiquidatorIsBorrower
	}

	borrowed, err := listedMarket(tx, action.Market)
	if err != nil {
		return err
	}

	collateral, err := listedMarket(tx, action.Collateral)
	if err != nil {
		return err
	}

	if err := p.markets.AccrueInterest(ctx, tx, borrowed); err != nil {
		return err
	}

	if err := p.markets.AccrueInterest(ctx, tx, collateral); err != nil {
		return err
	}

	liquidator, borrower := tx.Account(sender), tx.Account(action.Borrower)
	if err := p.comptroller.LiquidateBorrowAllowed(ctx, tx, borrowed, collateral, liquidator, borrower, amount); err != nil {
		log.WithError(err).Infoln("liquidation denied")
		return err
	}

	repaid, err := p.markets.RepayBorrow(ctx, tx, borrowed, liquidator, borrower, amount)
	if err != nil {
		return err
	}

	seizeTokens, err := p.comptroller.LiquidateCalculateSeizeTokens(ctx, tx, borrowed, collateral, repaid)
	if err != nil {
		return err
	}

	if err := p.comptroller.SeizeAllowed(ctx, tx, collateral, borrowed); err != nil {
		return err
	}

	if err := p.markets.Seize(ctx, tx, collateral, liquidator, borrower, seizeTokens); err != nil {
		return err
	}

	tx.Emit(core.NewEvent(core.EventLiquidateBorrow, borrowed.Symbol, core.LiquidateBorrowEvent{
		Market:           borrowed.Symbol,
		Liquidator:       sender,
		Borrower:         action.Borrower,
		RepayAmount:      repaid.Dec(),
		CollateralMarket: collateral.Symbol,
		SeizeTokens:      seizeTokens.Dec(),
	}, sender, action.Borrower))

	if err := p.pull(ctx, borrowed, sender, repaid); err != nil {
		return err
	}

	log.WithField("repaid", repaid.Dec()).WithField("seize_tokens", seizeTokens.Dec()).Infoln("liquidated")
	return nil
}
