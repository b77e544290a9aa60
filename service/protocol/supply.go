package protocol

import (
	"context"

	"moneymarket/core"
	"moneymarket/store/ledger"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

func (p *Protocol) handleMint(ctx context.Context, tx *ledger.Tx, sender string, action *core.MintAction) error {
	log := logger.FromContext(ctx).WithField("market", action.Market)

	amount, err := parseAmount(action.Amount)
	if err != nil {
		return err
	}

	market, err := listedMarket(tx, action.Market)
	if err != nil {
		return err
	}

	if err := p.markets.AccrueInterest(ctx, tx, market); err != nil {
		return err
	}

	minter := tx.Account(sender)
	if err := p.comptroller.MintAllowed(ctx, tx, market, minter, amount); err != nil {
		return err
	}

	tokens, err := p.markets.Mint(ctx, tx, market, minter, amount)
	if err != nil {
		return err
	}

	if err := p.pull(ctx, market, sender, amount); err != nil {
		log.WithError(err).Infoln("pull underlying failed")
		return err
	}

	log.WithField("tokens", tokens.Dec()).Debugln("minted")
	return nil
}

func (p *Protocol) handleRedeem(ctx context.Context, tx *ledger.Tx, sender string, action *core.RedeemAction) error {
	tokens, err := parseAmount(action.Tokens)
	if err != nil {
		return err
	}

	return p.redeem(ctx, tx, sender, action.Market, tokens, nil)
}

func (p *Protocol) handleRedeemUnderlying(ctx context.Context, tx *ledger.Tx, sender string, action *core.RedeemUnderlyingAction) error {
	amount, err := parseAmount(action.Amount)
	if err != nil {
		return err
	}

	return p.redeem(ctx, tx, sender, action.Market, nil, amount)
}

func (p *Protocol) redeem(ctx context.Context, tx *ledger.Tx, sender, symbol string, tokensIn, amountIn *uint256.Int) error {
	market, err := listedMarket(tx, symbol)
	if err != nil {
		return err
	}

	if err := p.markets.AccrueInterest(ctx, tx, market); err != nil {
		return err
	}

	tokens, amount, err := p.markets.RedeemAmounts(ctx, market, tokensIn, amountIn)
	if err != nil {
		return err
	}

	redeemer := tx.Account(sender)
	if tx.Position(redeemer, market.ID).ClaimBalance.Lt(tokens) {
		return core.ErrInsufficientBalance
	}

	if err := p.comptroller.RedeemAllowed(ctx, tx, market, redeemer, tokens); err != nil {
		return err
	}

	if err := p.markets.Redeem(ctx, tx, market, redeemer, tokens, amount); err != nil {
		return err
	}

	return p.push(ctx, market, sender, amount)
}
