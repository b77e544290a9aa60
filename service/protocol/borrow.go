package protocol

import (
	"context"

	"moneymarket/core"
	"moneymarket/store/ledger"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

func (p *Protocol) handleBorrow(ctx context.Context, tx *ledger.Tx, sender string, action *core.BorrowAction) error {
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

	borrower := tx.Account(sender)
	if err := p.comptroller.BorrowAllowed(ctx, tx, market, borrower, amount); err != nil {
		log.WithError(err).Infoln("borrow denied")
		return err
	}

	if err := p.markets.Borrow(ctx, tx, market, borrower, amount); err != nil {
		return err
	}

	return p.push(ctx, market, sender, amount)
}

func (p *Protocol) handleRepayBorrow(ctx context.Context, tx *ledger.Tx, sender string, action *core.RepayBorrowAction) error {
	amount, err := parseAmount(action.Amount)
	if err != nil {
		return err
	}

	_, err = p.repayBorrow(ctx, tx, sender, sender, action.Market, amount)
	return err
}

func (p *Protocol) handleRepayBorrowBehalf(ctx context.Context, tx *ledger.Tx, sender string, action *core.RepayBorrowBehalfAction) error {
	amount, err := parseAmount(action.Amount)
	if err != nil {
		return err
	}

	_, err = p.repayBorrow(ctx, tx, sender, action.Borrower, action.Market, amount)
	return err
}

// repayBorrow payer settles up to amount of borrower's debt; the pull of the
// repaid underlying is the final step
func (p *Protocol) repayBorrow(ctx context.Context, tx *ledger.Tx, payer, borrower, symbol string, amount *uint256.Int) (*uint256.Int, error) {
	market, err := listedMarket(tx, symbol)
	if err != nil {
		return nil, err
	}

	if err := p.markets.AccrueInterest(ctx, tx, market); err != nil {
		return nil, err
	}

	payerID, borrowerID := tx.Account(payer), tx.Account(borrower)
	if err := p.comptroller.RepayBorrowAllowed(ctx, tx, market, payerID, borrowerID, amount); err != nil {
		return nil, err
	}

	repaid, err := p.markets.RepayBorrow(ctx, tx, market, payerID, borrowerID, amount)
	if err != nil {
		return nil, err
	}

	if err := p.pull(ctx, market, payer, repaid); err != nil {
		return nil, err
	}

	return repaid, nil
}
