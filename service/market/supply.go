package market

import (
	"context"

	"moneymarket/core"
	fp "moneymarket/internal/compound"
	"moneymarket/pkg/compound"

	"github.com/holiman/uint256"
)

// Mint credit amount of underlying to minter as claims at the current
// exchange rate. Returns the minted claims.
func (s *Service) Mint(ctx context.Context, tx core.Ledger, market *core.Market, minter core.AccountID, amount *uint256.Int) (*uint256.Int, error) {
	exchangeRate, err := compound.ExchangeRate(market)
	if err != nil {
		return nil, err
	}

	tokens, err := compound.UnderlyingToTokens(amount, exchangeRate)
	if err != nil {
		return nil, err
	}

	if tokens.IsZero() {
		return nil, core.ErrInvalidAmount
	}

	position := tx.Position(minter, market.ID)
	totalSupply, err := fp.Add(&market.TotalSupply, tokens)
	if err != nil {
		return nil, err
	}

	claims, err := fp.Add(&position.ClaimBalance, tokens)
	if err != nil {
		return nil, err
	}

	cash, err := fp.Add(&market.Cash, amount)
	if err != nil {
		return nil, err
	}

	market.TotalSupply = *totalSupply
	market.Cash = *cash
	position.ClaimBalance = *claims

	tx.Emit(core.NewEvent(core.EventMint, market.Symbol, core.MintEvent{
		Market:     market.Symbol,
		Minter:     tx.Address(minter),
		MintAmount: amount.Dec(),
		MintTokens: tokens.Dec(),
	}, tx.Address(minter)))

	return tokens, nil
}

// RedeemAmounts resolve a redeem request given either in claims or in
// underlying into (claims, underlying)
func (s *Service) RedeemAmounts(ctx context.Context, market *core.Market, tokensIn, amountIn *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	if (tokensIn == nil || tokensIn.IsZero()) == (amountIn == nil || amountIn.IsZero()) {
		return nil, nil, core.ErrInvalidAmount
	}

	exchangeRate, err := compound.ExchangeRate(market)
	if err != nil {
		return nil, nil, err
	}

	var tokens, amount *uint256.Int
	if tokensIn != nil && !tokensIn.IsZero() {
		tokens = tokensIn.Clone()
		if amount, err = compound.TokensToUnderlying(tokens, exchangeRate); err != nil {
			return nil, nil, err
		}
	} else {
		amount = amountIn.Clone()
		if tokens, err = compound.UnderlyingToTokens(amount, exchangeRate); err != nil {
			return nil, nil, err
		}
	}

	if tokens.IsZero() || amount.IsZero() {
		return nil, nil, core.ErrInvalidAmount
	}

	return tokens, amount, nil
}

// Redeem burn tokens of redeemer's claims paying out amount of cash
func (s *Service) Redeem(ctx context.Context, tx core.Ledger, market *core.Market, redeemer core.AccountID, tokens, amount *uint256.Int) error {
	position := tx.Position(redeemer, market.ID)
	if position.ClaimBalance.Lt(tokens) {
		return core.ErrInsufficientBalance
	}

	if market.Cash.Lt(amount) {
		return core.ErrInsufficientCash
	}

	totalSupply, err := fp.Sub(&market.TotalSupply, tokens)
	if err != nil {
		return err
	}

	market.TotalSupply = *totalSupply
	market.Cash.Sub(&market.Cash, amount)
	position.ClaimBalance.Sub(&position.ClaimBalance, tokens)

	tx.Emit(core.NewEvent(core.EventRedeem, market.Symbol, core.RedeemEvent{
		Market:       market.Symbol,
		Redeemer:     tx.Address(redeemer),
		RedeemAmount: amount.Dec(),
		RedeemTokens: tokens.Dec(),
	}, tx.Address(redeemer)))

	return nil
}
