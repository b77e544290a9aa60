package market

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/compound"
	"moneymarket/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// Service market ledger. Methods mutate the market and positions handed
// in through the ledger view and emit the matching events; authorization
// and asset transfers belong to the caller.
type Service struct{}

// New new market service
func New() *Service {
	return &Service{}
}

var _ core.IMarketService = (*Service)(nil)

// AccrueInterest accrue the market up to the ledger block
func (s *Service) AccrueInterest(ctx context.Context, tx core.Ledger, market *core.Market) error {
	accrual, err := compound.AccrueInterest(market, tx.Block())
	if err != nil {
		logger.FromContext(ctx).WithError(err).
			WithField("market", market.Symbol).
			WithField("engine_bug", true).
			Errorln("accrue interest failed")
		return err
	}

	if accrual == nil {
		return nil
	}

	tx.Emit(core.NewEvent(core.EventAccrueInterest, market.Symbol, core.AccrueInterestEvent{
		Market:              market.Symbol,
		CashPrior:           accrual.CashPrior.Dec(),
		InterestAccumulated: accrual.InterestAccumulated.Dec(),
		BorrowIndex:         market.BorrowIndex.Dec(),
		TotalBorrows:        market.TotalBorrows.Dec(),
	}))

	return nil
}

// ExchangeRate stored exchange rate, accrue first for the current one
func (s *Service) ExchangeRate(ctx context.Context, market *core.Market) (*uint256.Int, error) {
	return compound.ExchangeRate(market)
}

// BorrowBalance stored borrow balance of account
func (s *Service) BorrowBalance(ctx context.Context, tx core.Ledger, market *core.Market, account core.AccountID) (*uint256.Int, error) {
	return compound.BorrowBalance(tx.Position(account, market.ID), market)
}

// Snapshot decimal view of the market
func (s *Service) Snapshot(ctx context.Context, market *core.Market) (*core.MarketSnapshot, error) {
	exchangeRate, err := compound.ExchangeRate(market)
	if err != nil {
		return nil, err
	}

	borrowRate, err := compound.BorrowRatePerBlock(market)
	if err != nil {
		return nil, err
	}

	supplyRate, err := compound.SupplyRatePerBlock(market)
	if err != nil {
		return nil, err
	}

	return &core.MarketSnapshot{
		Symbol:             market.Symbol,
		Underlying:         market.Underlying,
		Cash:               number.Exp(&market.Cash),
		TotalBorrows:       number.Exp(&market.TotalBorrows),
		TotalReserves:      number.Exp(&market.TotalReserves),
		TotalSupply:        number.Exp(&market.TotalSupply),
		BorrowIndex:        number.Exp(&market.BorrowIndex),
		ExchangeRate:       number.Exp(exchangeRate),
		BorrowRatePerBlock: number.Exp(borrowRate),
		SupplyRatePerBlock: number.Exp(supplyRate),
		ReserveFactor:      number.Exp(&market.ReserveFactor),
		CollateralFactor:   number.Exp(&market.CollateralFactor),
		BorrowCap:          number.Exp(&market.BorrowCap),
		IsListed:           market.IsListed,
		AccrualBlock:       market.AccrualBlock,
	}, nil
}
