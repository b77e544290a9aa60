package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// MarketID arena handle of a market
type MarketID uint32

// Market one underlying's pool. All amounts are base units, rates and
// factors are 1e18 mantissas.
type Market struct {
	ID MarketID
	// Symbol claim token symbol, e.g. cDAI
	Symbol string
	// Underlying asset symbol
	Underlying string
	// Address pool account holding the underlying
	Address string

	Cash          uint256.Int
	TotalBorrows  uint256.Int
	TotalReserves uint256.Int
	TotalSupply   uint256.Int
	BorrowIndex   uint256.Int
	AccrualBlock  int64

	ReserveFactor       uint256.Int
	InitialExchangeRate uint256.Int
	// BorrowCap zero means unlimited
	BorrowCap uint256.Int

	BaseRatePerBlock       uint256.Int
	MultiplierPerBlock     uint256.Int
	JumpMultiplierPerBlock uint256.Int
	Kink                   uint256.Int

	// owned by the comptroller
	IsListed         bool
	CollateralFactor uint256.Int
}

// MarketSnapshot persisted view of a market after the last applied operation
type MarketSnapshot struct {
	ID                 uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Symbol             string          `sql:"size:36;unique_index" json:"symbol"`
	Underlying         string          `sql:"size:36" json:"underlying"`
	Cash               decimal.Decimal `sql:"type:decimal(64,18)" json:"cash"`
	TotalBorrows       decimal.Decimal `sql:"type:decimal(64,18)" json:"total_borrows"`
	TotalReserves      decimal.Decimal `sql:"type:decimal(64,18)" json:"total_reserves"`
	TotalSupply        decimal.Decimal `sql:"type:decimal(64,18)" json:"total_supply"`
	BorrowIndex        decimal.Decimal `sql:"type:decimal(64,18)" json:"borrow_index"`
	ExchangeRate       decimal.Decimal `sql:"type:decimal(64,18)" json:"exchange_rate"`
	BorrowRatePerBlock decimal.Decimal `sql:"type:decimal(64,18)" json:"borrow_rate_per_block"`
	SupplyRatePerBlock decimal.Decimal `sql:"type:decimal(64,18)" json:"supply_rate_per_block"`
	ReserveFactor      decimal.Decimal `sql:"type:decimal(20,18)" json:"reserve_factor"`
	CollateralFactor   decimal.Decimal `sql:"type:decimal(20,18)" json:"collateral_factor"`
	BorrowCap          decimal.Decimal `sql:"type:decimal(64,18)" json:"borrow_cap"`
	IsListed           bool            `json:"is_listed"`
	AccrualBlock       int64           `json:"accrual_block"`
	OperationID        uint64          `json:"operation_id"`
	Version            int64           `json:"version"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// IMarketStore market snapshot store
type IMarketStore interface {
	Save(ctx context.Context, tx *db.DB, snapshot *MarketSnapshot) error
	Find(ctx context.Context, symbol string) (*MarketSnapshot, error)
	All(ctx context.Context) ([]*MarketSnapshot, error)
}

// InterestRateModel per block rates of a market
type InterestRateModel interface {
	BorrowRate(cash, borrows, reserves *uint256.Int) (*uint256.Int, error)
	SupplyRate(cash, borrows, reserves, reserveFactor *uint256.Int) (*uint256.Int, error)
}

// IMarketService market ledger operations, all run inside a ledger transaction
type IMarketService interface {
	AccrueInterest(ctx context.Context, tx Ledger, market *Market) error
	ExchangeRate(ctx context.Context, market *Market) (*uint256.Int, error)
	BorrowBalance(ctx context.Context, tx Ledger, market *Market, account AccountID) (*uint256.Int, error)
}
