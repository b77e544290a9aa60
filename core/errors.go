package core

import (
	"errors"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized caller is not the admin
	ErrUnauthorized ErrorCode = 100001
	// ErrUnknownAction action type not supported
	ErrUnknownAction ErrorCode = 100002

	// ErrMarketNotFound no market
	ErrMarketNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrMarketNotListed market not listed
	ErrMarketNotListed ErrorCode = 100102
	// ErrAlreadyListed market already listed
	ErrAlreadyListed ErrorCode = 100103
	// ErrInvalidFactor collateral factor or reserve factor out of range
	ErrInvalidFactor ErrorCode = 100104
	//ErrInsufficientLiquidity insufficient liquidity
	ErrInsufficientLiquidity ErrorCode = 100105
	// ErrInvalidIncentive liquidation incentive below 1.0
	ErrInvalidIncentive ErrorCode = 100106
	// ErrInsufficientShortfall borrower is not underwater
	ErrInsufficientShortfall ErrorCode = 100107
	// ErrPriceUnavailable invalid price
	ErrPriceUnavailable ErrorCode = 100108
	// ErrRepayExceedsMax repay above close factor
	ErrRepayExceedsMax ErrorCode = 100109
	// ErrInsufficientCollateralBalance borrower holds less than the seized claims
	ErrInsufficientCollateralBalance ErrorCode = 100110
	// ErrTransferFailed underlying transfer failed
	ErrTransferFailed ErrorCode = 100111
	// ErrMathOverflow fixed point overflow, underflow or division by zero
	ErrMathOverflow ErrorCode = 100112
	// ErrNonzeroBorrowBalance account owes on the market
	ErrNonzeroBorrowBalance ErrorCode = 100113
	// ErrInsufficientCash pool cash too low
	ErrInsufficientCash ErrorCode = 100114
	// ErrInsufficientBalance account claims too low
	ErrInsufficientBalance ErrorCode = 100115
	// ErrInvalidCloseFactor close factor out of range
	ErrInvalidCloseFactor ErrorCode = 100116
	// ErrBorrowCapReached total borrows over cap
	ErrBorrowCapReached ErrorCode = 100117
	// ErrLiquidatorIsBorrower self liquidation
	ErrLiquidatorIsBorrower ErrorCode = 100118
	// ErrOracleNotFound oracle not registered
	ErrOracleNotFound ErrorCode = 100119
	// ErrNoBorrowBalance nothing to repay
	ErrNoBorrowBalance ErrorCode = 100120
)

var errorNames = map[ErrorCode]string{
	ErrUnknown:                       "unknown",
	ErrUnauthorized:                  "unauthorized",
	ErrUnknownAction:                 "unknown action",
	ErrMarketNotFound:                "market not found",
	ErrInvalidAmount:                 "invalid amount",
	ErrMarketNotListed:               "market not listed",
	ErrAlreadyListed:                 "market already listed",
	ErrInvalidFactor:                 "invalid factor",
	ErrInsufficientLiquidity:         "insufficient liquidity",
	ErrInvalidIncentive:              "invalid liquidation incentive",
	ErrInsufficientShortfall:         "insufficient shortfall",
	ErrPriceUnavailable:              "price unavailable",
	ErrRepayExceedsMax:               "repay exceeds close factor",
	ErrInsufficientCollateralBalance: "insufficient collateral balance",
	ErrTransferFailed:                "transfer failed",
	ErrMathOverflow:                  "math overflow",
	ErrNonzeroBorrowBalance:          "nonzero borrow balance",
	ErrInsufficientCash:              "insufficient cash",
	ErrInsufficientBalance:           "insufficient balance",
	ErrInvalidCloseFactor:            "invalid close factor",
	ErrBorrowCapReached:              "borrow cap reached",
	ErrLiquidatorIsBorrower:          "liquidator is borrower",
	ErrOracleNotFound:                "oracle not found",
	ErrNoBorrowBalance:               "no borrow balance",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

// Name human readable name of the code
func (e ErrorCode) Name() string {
	if name, ok := errorNames[e]; ok {
		return name
	}

	return e.String()
}

func (e ErrorCode) Error() string {
	return e.Name()
}

// IsEngineBug reports codes that must never surface from a consistent ledger
func (e ErrorCode) IsEngineBug() bool {
	return e == ErrMathOverflow || e == ErrInsufficientCollateralBalance
}

// CodeOf extract the ErrorCode from err, ErrUnknown if none
func CodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}
