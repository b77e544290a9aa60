package market

import (
	"context"

	"moneymarket/core"
	fp "moneymarket/internal/compound"
	"moneymarket/pkg/compound"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// Borrow record amount of new debt against borrower and release the cash
func (s *Service) Borrow(ctx context.Context, tx core.Ledger, market *core.Market, borrower core.AccountID, amount *uint256.Int) error {
	if market.Cash.Lt(amount) {
		return core.ErrInsufficientCash
	}

	position := tx.Position(borrower, market.ID)
	owed, err := compound.BorrowBalance(position, market)
	if err != nil {
		return err
	}

	accountBorrows, err := fp.Add(owed, amount)
	if err != nil {
		return err
	}

	totalBorrows, err := fp.Add(&market.TotalBorrows, amount)
	if err != nil {
		return err
	}

	position.BorrowPrincipal = *accountBorrows
	position.InterestIndex = market.BorrowIndex
	market.TotalBorrows = *totalBorrows
	market.Cash.Sub(&market.Cash, amount)

	tx.Emit(core.NewEvent(core.EventBorrow, market.Symbol, core.BorrowEvent{
		Market:         market.Symbol,
		Borrower:       tx.Address(borrower),
		BorrowAmount:   amount.Dec(),
		AccountBorrows: accountBorrows.Dec(),
		TotalBorrows:   totalBorrows.Dec(),
	}, tx.Address(borrower)))

	return nil
}

// RepayBorrow reduce borrower's debt by min(amount, owed), paid by payer.
// Returns the amount actually repaid.
func (s *Service) RepayBorrow(ctx context.Context, tx core.Ledger, market *core.Market, payer, borrower core.AccountID, amount *uint256.Int) (*uint256.Int, error) {
	position := tx.Position(borrower, market.ID)
	owed, err := compound.BorrowBalance(position, market)
	if err != nil {
		return nil, err
	}

	if owed.IsZero() {
		return nil, core.ErrNoBorrowBalance
	}

	repay := fp.Min(amount, owed)
	accountBorrows := new(uint256.Int).Sub(owed, repay)
	// per-account balances round down independently, their sum may exceed the aggregate
	totalBorrows := new(uint256.Int)
	if !repay.Gt(&market.TotalBorrows) {
		totalBorrows.Sub(&market.TotalBorrows, repay)
	}

	cash, err := fp.Add(&market.Cash, repay)
	if err != nil {
		return nil, err
	}

	position.BorrowPrincipal = *accountBorrows
	position.InterestIndex = market.BorrowIndex
	market.TotalBorrows = *totalBorrows
	market.Cash = *cash

	tx.Emit(core.NewEvent(core.EventRepayBorrow, market.Symbol, core.RepayBorrowEvent{
		Market:         market.Symbol,
		Payer:          tx.Address(payer),
		Borrower:       tx.Address(borrower),
		RepayAmount:    repay.Dec(),
		AccountBorrows: accountBorrows.Dec(),
		TotalBorrows:   totalBorrows.Dec(),
	}, tx.Address(payer), tx.Address(borrower)))

	return repay, nil
}

// Seize move tokens of borrower's claims to liquidator
func (s *Service) Seize(ctx context.Context, tx core.Ledger, market *core.Market, liquidator, borrower core.AccountID, tokens *uint256.Int) error {
	from := tx.Position(borrower, market.ID)
	if from.ClaimBalance.Lt(tokens) {
		logger.FromContext(ctx).
			WithField("market", market.Symbol).
			WithField("borrower", tx.Address(borrower)).
			WithField("claims", from.ClaimBalance.Dec()).
			WithField("seize_tokens", tokens.Dec()).
			WithField("engine_bug", true).
			Errorln("seize exceeds collateral balance")
		return core.ErrInsufficientCollateralBalance
	}

	to := tx.Position(liquidator, market.ID)
	claims, err := fp.Add(&to.ClaimBalance, tokens)
	if err != nil {
		return err
	}

	from.ClaimBalance.Sub(&from.ClaimBalance, tokens)
	to.ClaimBalance = *claims
	return nil
}
