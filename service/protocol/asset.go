package protocol

import (
	"context"
	"fmt"

	"moneymarket/core"
	"moneymarket/store/ledger"

	"github.com/holiman/uint256"
)

// pull move amount of the market's underlying from account into the pool
// using the allowance account granted the pool
func (p *Protocol) pull(ctx context.Context, market *core.Market, from string, amount *uint256.Int) error {
	asset, err := p.assets.Find(ctx, market.Underlying)
	if err != nil {
		return fmt.Errorf("%w: %s", core.ErrTransferFailed, err.Error())
	}

	if err := asset.TransferFrom(ctx, market.Address, from, market.Address, amount); err != nil {
		return fmt.Errorf("%w: %s", core.ErrTransferFailed, err.Error())
	}

	return nil
}

// push move amount of the market's underlying out of the pool
func (p *Protocol) push(ctx context.Context, market *core.Market, to string, amount *uint256.Int) error {
	asset, err := p.assets.Find(ctx, market.Underlying)
	if err != nil {
		return fmt.Errorf("%w: %s", core.ErrTransferFailed, err.Error())
	}

	if err := asset.Transfer(ctx, market.Address, to, amount); err != nil {
		return fmt.Errorf("%w: %s", core.ErrTransferFailed, err.Error())
	}

	return nil
}

// handleApprove grant spender an allowance over sender's underlying. A
// market symbol as spender resolves to the market's pool address.
func (p *Protocol) handleApprove(ctx context.Context, tx *ledger.Tx, sender string, action *core.ApproveAction) error {
	amount, err := parseUint(action.Amount)
	if err != nil {
		return err
	}

	spender := action.Spender
	if m, err := tx.MarketBySymbol(spender); err == nil {
		spender = m.Address
	}

	asset, err := p.assets.Find(ctx, action.Asset)
	if err != nil {
		return fmt.Errorf("%w: %s", core.ErrTransferFailed, err.Error())
	}

	tx.Emit(core.NewEvent(core.EventApproval, "", core.ApprovalEvent{
		Asset:   action.Asset,
		Owner:   sender,
		Spender: spender,
		Amount:  amount.Dec(),
	}, sender))

	if err := asset.Approve(ctx, sender, spender, amount); err != nil {
		return fmt.Errorf("%w: %s", core.ErrTransferFailed, err.Error())
	}

	return nil
}
