package compound

import (
	"moneymarket/core"
	fp "moneymarket/internal/compound"

	"github.com/holiman/uint256"
)

// InterestRateModel the market's jump rate curve
func InterestRateModel(market *core.Market) fp.JumpRateModel {
	return fp.JumpRateModel{
		BaseRatePerBlock:       market.BaseRatePerBlock,
		MultiplierPerBlock:     market.MultiplierPerBlock,
		JumpMultiplierPerBlock: market.JumpMultiplierPerBlock,
		Kink:                   market.Kink,
	}
}

// BorrowRatePerBlock current borrow rate
func BorrowRatePerBlock(market *core.Market) (*uint256.Int, error) {
	return InterestRateModel(market).BorrowRate(&market.Cash, &market.TotalBorrows, &market.TotalReserves)
}

// SupplyRatePerBlock current supply rate
func SupplyRatePerBlock(market *core.Market) (*uint256.Int, error) {
	return InterestRateModel(market).SupplyRate(&market.Cash, &market.TotalBorrows, &market.TotalReserves, &market.ReserveFactor)
}

// ExchangeRate exchange rate
// exchange_rate = (market.cash + market.total_borrows - market.reserves) / market.total_supply
func ExchangeRate(market *core.Market) (*uint256.Int, error) {
	if market.TotalSupply.IsZero() {
		if market.InitialExchangeRate.IsZero() {
			return fp.One(), nil
		}

		return market.InitialExchangeRate.Clone(), nil
	}

	total, err := fp.Add(&market.Cash, &market.TotalBorrows)
	if err != nil {
		return nil, err
	}

	assets, err := fp.Sub(total, &market.TotalReserves)
	if err != nil {
		return nil, err
	}

	return fp.DivExp(assets, &market.TotalSupply)
}

// Accrual result of one accrual step
type Accrual struct {
	CashPrior           uint256.Int
	InterestAccumulated uint256.Int
}

// AccrueInterest bring the market to block. Nothing is written unless every
// step succeeds; a block not after the accrual block is a no-op and
// returns nil.
func AccrueInterest(market *core.Market, block int64) (*Accrual, error) {
	if market.BorrowIndex.IsZero() {
		market.BorrowIndex.SetUint64(fp.ExpScale)
	}

	blockDelta := block - market.AccrualBlock
	if blockDelta <= 0 {
		return nil, nil
	}

	borrowRate, err := BorrowRatePerBlock(market)
	if err != nil {
		return nil, err
	}

	simpleInterestFactor, err := fp.Mul(borrowRate, uint256.NewInt(uint64(blockDelta)))
	if err != nil {
		return nil, err
	}

	interestAccumulated, err := fp.MulExp(simpleInterestFactor, &market.TotalBorrows)
	if err != nil {
		return nil, err
	}

	totalBorrows, err := fp.Add(interestAccumulated, &market.TotalBorrows)
	if err != nil {
		return nil, err
	}

	reserveDelta, err := fp.MulExp(&market.ReserveFactor, interestAccumulated)
	if err != nil {
		return nil, err
	}

	totalReserves, err := fp.Add(reserveDelta, &market.TotalReserves)
	if err != nil {
		return nil, err
	}

	indexDelta, err := fp.MulExp(simpleInterestFactor, &market.BorrowIndex)
	if err != nil {
		return nil, err
	}

	borrowIndex, err := fp.Add(indexDelta, &market.BorrowIndex)
	if err != nil {
		return nil, err
	}

	accrual := &Accrual{CashPrior: market.Cash, InterestAccumulated: *interestAccumulated}

	market.AccrualBlock = block
	market.TotalBorrows = *totalBorrows
	market.TotalReserves = *totalReserves
	market.BorrowIndex = *borrowIndex

	return accrual, nil
}
