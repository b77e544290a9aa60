package asset

import (
	"context"
	"testing"

	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenTransferFrom(t *testing.T) {
	ctx := context.Background()
	token := NewToken("DAI")
	require.Nil(t, token.Credit("alice", uint256.NewInt(100)))

	err := token.TransferFrom(ctx, "pool", "alice", "pool", uint256.NewInt(10))
	assert.Equal(t, ErrInsufficientAllowance, err)

	require.Nil(t, token.Approve(ctx, "alice", "pool", uint256.NewInt(60)))
	require.Nil(t, token.TransferFrom(ctx, "pool", "alice", "pool", uint256.NewInt(50)))

	balance, _ := token.BalanceOf(ctx, "alice")
	assert.Equal(t, uint64(50), balance.Uint64())
	balance, _ = token.BalanceOf(ctx, "pool")
	assert.Equal(t, uint64(50), balance.Uint64())
	allowance, _ := token.Allowance(ctx, "alice", "pool")
	assert.Equal(t, uint64(10), allowance.Uint64())

	// a failed pull moves nothing and keeps the allowance
	require.Nil(t, token.Approve(ctx, "alice", "pool", uint256.NewInt(1000)))
	err = token.TransferFrom(ctx, "pool", "alice", "pool", uint256.NewInt(51))
	assert.Equal(t, ErrInsufficientBalance, err)
	allowance, _ = token.Allowance(ctx, "alice", "pool")
	assert.Equal(t, uint64(1000), allowance.Uint64())
}

func TestTokenTransfer(t *testing.T) {
	ctx := context.Background()
	token := NewToken("DAI")
	require.Nil(t, token.Credit("pool", uint256.NewInt(5)))

	assert.Equal(t, ErrInsufficientBalance, token.Transfer(ctx, "pool", "bob", uint256.NewInt(6)))
	require.Nil(t, token.Transfer(ctx, "pool", "bob", uint256.NewInt(5)))
	balance, _ := token.BalanceOf(ctx, "bob")
	assert.Equal(t, uint64(5), balance.Uint64())
}

func TestFromConfig(t *testing.T) {
	s, err := FromConfig([]core.AssetConf{
		{Symbol: "USDC", Decimals: 6, Holders: []core.HolderConf{{Address: "alice", Amount: number.Decimal("2.5")}}},
		{Symbol: "DAI", Holders: []core.HolderConf{{Address: "alice", Amount: number.Decimal("1")}}},
	})
	require.Nil(t, err)

	usdc, err := s.Find(context.Background(), "USDC")
	require.Nil(t, err)
	balance, _ := usdc.BalanceOf(context.Background(), "alice")
	assert.Equal(t, uint64(2500000), balance.Uint64())

	dai, err := s.Find(context.Background(), "DAI")
	require.Nil(t, err)
	balance, _ = dai.BalanceOf(context.Background(), "alice")
	assert.Equal(t, uint64(1e18), balance.Uint64())

	_, err = s.Find(context.Background(), "BTC")
	assert.Equal(t, ErrAssetNotFound, err)
}
