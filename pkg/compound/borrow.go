package compound

import (
	"moneymarket/core"
	fp "moneymarket/internal/compound"

	"github.com/holiman/uint256"
)

// BorrowBalance caculate borrow balance
// balance = position.principal * market.borrow_index / position.interest_index
func BorrowBalance(position *core.Position, market *core.Market) (*uint256.Int, error) {
	if position.BorrowPrincipal.IsZero() {
		return new(uint256.Int), nil
	}

	if position.InterestIndex.IsZero() {
		return position.BorrowPrincipal.Clone(), nil
	}

	return fp.MulDiv(&position.BorrowPrincipal, &market.BorrowIndex, &position.InterestIndex)
}

// TokensToUnderlying claims * exchange_rate
func TokensToUnderlying(tokens, exchangeRate *uint256.Int) (*uint256.Int, error) {
	return fp.MulExp(tokens, exchangeRate)
}

// UnderlyingToTokens amount / exchange_rate, truncated
func UnderlyingToTokens(amount, exchangeRate *uint256.Int) (*uint256.Int, error) {
	return fp.DivExp(amount, exchangeRate)
}

// SeizeTokens claims of the collateral market paid for repayAmount
// seize_tokens = repay * incentive * price_borrowed / (price_collateral * exchange_rate_collateral)
func SeizeTokens(repayAmount, incentive, priceBorrowed, priceCollateral, exchangeRate *uint256.Int) (*uint256.Int, error) {
	numerator, err := fp.MulExp(incentive, priceBorrowed)
	if err != nil {
		return nil, err
	}

	denominator, err := fp.MulExp(priceCollateral, exchangeRate)
	if err != nil {
		return nil, err
	}

	return fp.MulDiv(repayAmount, numerator, denominator)
}
