package core

import (
	"context"

	"github.com/holiman/uint256"
)

// Asset fungible underlying with allowance based pulls. Any error aborts
// the enclosing operation.
type Asset interface {
	Symbol() string
	BalanceOf(ctx context.Context, owner string) (*uint256.Int, error)
	Allowance(ctx context.Context, owner, spender string) (*uint256.Int, error)
	Approve(ctx context.Context, owner, spender string, amount *uint256.Int) error
	Transfer(ctx context.Context, from, to string, amount *uint256.Int) error
	TransferFrom(ctx context.Context, spender, from, to string, amount *uint256.Int) error
}

// IAssetService asset registry
type IAssetService interface {
	Find(ctx context.Context, symbol string) (Asset, error)
}
