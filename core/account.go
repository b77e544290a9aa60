package core

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// AccountID arena handle of an account address
type AccountID uint32

// PositionKey (account, market)
type PositionKey struct {
	Account AccountID
	Market  MarketID
}

// Position an account's stake in one market. Zeroed, never deleted.
type Position struct {
	Account AccountID
	Market  MarketID

	ClaimBalance uint256.Int
	// BorrowPrincipal owed as of InterestIndex
	BorrowPrincipal uint256.Int
	InterestIndex   uint256.Int
}

// IsZero no claims and no debt
func (p *Position) IsZero() bool {
	return p.ClaimBalance.IsZero() && p.BorrowPrincipal.IsZero()
}

// AccountLiquidity at most one field is nonzero
type AccountLiquidity struct {
	Liquidity uint256.Int
	Shortfall uint256.Int
}

// AccountPosition read model of a position, base units
type AccountPosition struct {
	Address    string          `json:"address"`
	Market     string          `json:"market"`
	Claims     decimal.Decimal `json:"claims"`
	Supply     decimal.Decimal `json:"supply"`
	Borrow     decimal.Decimal `json:"borrow"`
	Collateral bool            `json:"collateral"`
}
