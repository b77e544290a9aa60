package comptroller

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/compound"
)

// EnterMarkets add markets to the account's collateral, all or nothing
func (c *Comptroller) EnterMarkets(ctx context.Context, tx core.Ledger, account core.AccountID, markets []*core.Market) error {
	for _, market := range markets {
		if err := listed(market); err != nil {
			return err
		}

		if tx.IsMember(account, market.ID) {
			continue
		}

		tx.AddMember(account, market.ID)
		tx.Emit(core.NewEvent(core.EventMarketEntered, market.Symbol, core.MarketMembershipEvent{
			Market:  market.Symbol,
			Account: tx.Address(account),
		}, tx.Address(account)))
	}

	return nil
}

// ExitMarket remove a market from the account's collateral. The account must
// owe nothing on it and stay solvent without it.
func (c *Comptroller) ExitMarket(ctx context.Context, tx core.Ledger, account core.AccountID, market *core.Market) error {
	if !tx.IsMember(account, market.ID) {
		return nil
	}

	if err := c.markets.AccrueInterest(ctx, tx, market); err != nil {
		return err
	}

	owed, err := compound.BorrowBalance(tx.Position(account, market.ID), market)
	if err != nil {
		return err
	}

	if !owed.IsZero() {
		return core.ErrNonzeroBorrowBalance
	}

	claims := tx.Position(account, market.ID).ClaimBalance
	if err := c.RedeemAllowed(ctx, tx, market, account, &claims); err != nil {
		return err
	}

	tx.RemoveMember(account, market.ID)
	tx.Emit(core.NewEvent(core.EventMarketExited, market.Symbol, core.MarketMembershipEvent{
		Market:  market.Symbol,
		Account: tx.Address(account),
	}, tx.Address(account)))
	return nil
}
