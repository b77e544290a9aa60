package comptroller

import (
	"context"
	"testing"

	"moneymarket/core"
	"moneymarket/service/market"
	"moneymarket/service/oracle"
	"moneymarket/store/ledger"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func e18(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(1e18))
}

// mantissa n/100
func pct(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(1e16))
}

type fixture struct {
	ctx         context.Context
	comptroller *Comptroller
	oracle      *oracle.SimplePriceOracle
	tx          *ledger.Tx
	alice       core.AccountID
	dai, eth    *core.Market
}

// alice holds 1000 cDAI claims as collateral and owes 100 base units of ETH
// outside her entered markets. DAI is 1 and ETH 2 USD per base unit.
func setup(t *testing.T) *fixture {
	ctx := context.Background()
	simple := oracle.NewSimple("")
	c := New(market.New(), simple)

	l := ledger.New(core.RiskParams{Admin: "admin"})
	tx := l.Begin(1)

	newMarket := func(symbol string) *core.Market {
		m, err := tx.NewMarket(core.Market{Symbol: symbol, Underlying: symbol[1:], AccrualBlock: 1})
		require.Nil(t, err)
		m.BorrowIndex = *e18(1)
		m.InitialExchangeRate = *e18(1)
		return m
	}

	f := &fixture{
		ctx:         ctx,
		comptroller: c,
		oracle:      simple,
		tx:          tx,
		dai:         newMarket("cDAI"),
		eth:         newMarket("cETH"),
	}

	require.Nil(t, c.SetPriceOracle(ctx, tx, oracle.SimpleName))
	require.Nil(t, c.SetCloseFactor(ctx, tx, pct(50)))
	require.Nil(t, c.SetLiquidationIncentive(ctx, tx, pct(108)))

	require.Nil(t, simple.SetUnderlyingPrice(ctx, f.dai, e18(1)))
	require.Nil(t, simple.SetUnderlyingPrice(ctx, f.eth, e18(2)))

	for _, m := range []*core.Market{f.dai, f.eth} {
		require.Nil(t, c.SupportMarket(ctx, tx, m))
	}
	require.Nil(t, c.SetCollateralFactor(ctx, tx, f.dai, pct(75)))
	require.Nil(t, c.SetCollateralFactor(ctx, tx, f.eth, pct(50)))

	f.alice = tx.Account("alice")
	f.dai.Cash.SetUint64(1000)
	f.dai.TotalSupply.SetUint64(1000)
	tx.Position(f.alice, f.dai.ID).ClaimBalance.SetUint64(1000)
	require.Nil(t, c.EnterMarkets(ctx, tx, f.alice, []*core.Market{f.dai}))

	f.eth.TotalBorrows.SetUint64(100)
	debt := tx.Position(f.alice, f.eth.ID)
	debt.BorrowPrincipal.SetUint64(100)
	debt.InterestIndex = *e18(1)

	return f
}

func TestAdminBounds(t *testing.T) {
	f := setup(t)
	c, ctx, tx := f.comptroller, f.ctx, f.tx

	assert.Equal(t, core.ErrAlreadyListed, c.SupportMarket(ctx, tx, f.dai))
	assert.Equal(t, core.ErrInvalidFactor, c.SetCollateralFactor(ctx, tx, f.dai, pct(91)))
	assert.Nil(t, c.SetCollateralFactor(ctx, tx, f.dai, pct(90)))

	assert.Equal(t, core.ErrInvalidCloseFactor, c.SetCloseFactor(ctx, tx, pct(5)))
	assert.Equal(t, core.ErrInvalidCloseFactor, c.SetCloseFactor(ctx, tx, pct(91)))
	assert.Nil(t, c.SetCloseFactor(ctx, tx, pct(90)))

	assert.Equal(t, core.ErrInvalidIncentive, c.SetLiquidationIncentive(ctx, tx, pct(99)))
	assert.Equal(t, core.ErrOracleNotFound, c.SetPriceOracle(ctx, tx, "chainlink"))

	assert.Equal(t, core.ErrInvalidFactor, c.SetReserveFactor(ctx, tx, f.eth, pct(101)))
	assert.Nil(t, c.SetReserveFactor(ctx, tx, f.eth, pct(100)))
}

func TestSetCollateralFactorNeedsPrice(t *testing.T) {
	f := setup(t)
	c, ctx, tx := f.comptroller, f.ctx, f.tx

	btc, err := tx.NewMarket(core.Market{Symbol: "cBTC", Underlying: "BTC"})
	require.Nil(t, err)

	assert.Equal(t, core.ErrMarketNotListed, c.SetCollateralFactor(ctx, tx, btc, pct(50)))
	require.Nil(t, c.SupportMarket(ctx, tx, btc))

	assert.Equal(t, core.ErrPriceUnavailable, core.CodeOf(c.SetCollateralFactor(ctx, tx, btc, pct(50))))
	assert.Nil(t, c.SetCollateralFactor(ctx, tx, btc, new(uint256.Int)))
}

func TestAccountLiquidity(t *testing.T) {
	f := setup(t)
	c, ctx, tx := f.comptroller, f.ctx, f.tx

	// 1000 * 0.75 collateral, 100 * 2 debt in a market not entered
	l, err := c.GetAccountLiquidity(ctx, tx, f.alice)
	require.Nil(t, err)
	assert.Equal(t, uint64(550), l.Liquidity.Uint64())
	assert.True(t, l.Shortfall.IsZero())

	l, err = c.GetHypotheticalAccountLiquidity(ctx, tx, f.alice, f.eth, nil, uint256.NewInt(300))
	require.Nil(t, err)
	assert.True(t, l.Liquidity.IsZero())
	assert.Equal(t, uint64(50), l.Shortfall.Uint64())

	l, err = c.GetHypotheticalAccountLiquidity(ctx, tx, f.alice, f.dai, uint256.NewInt(400), nil)
	require.Nil(t, err)
	assert.Equal(t, uint64(250), l.Liquidity.Uint64())

	bob := tx.Account("bob")
	l, err = c.GetAccountLiquidity(ctx, tx, bob)
	require.Nil(t, err)
	assert.True(t, l.Liquidity.IsZero())
	assert.True(t, l.Shortfall.IsZero())
}

func TestMembership(t *testing.T) {
	f := setup(t)
	c, ctx, tx := f.comptroller, f.ctx, f.tx

	before := len(tx.Events())
	require.Nil(t, c.EnterMarkets(ctx, tx, f.alice, []*core.Market{f.dai}))
	assert.Len(t, tx.Events(), before, "entering twice emits nothing")

	btc, err := tx.NewMarket(core.Market{Symbol: "cBTC"})
	require.Nil(t, err)
	assert.Equal(t, core.ErrMarketNotListed, c.EnterMarkets(ctx, tx, f.alice, []*core.Market{btc}))

	// exiting a market never entered
	require.Nil(t, c.ExitMarket(ctx, tx, f.alice, f.eth))

	// the only collateral backs the ETH debt
	assert.Equal(t, core.ErrInsufficientLiquidity, c.ExitMarket(ctx, tx, f.alice, f.dai))

	require.Nil(t, c.EnterMarkets(ctx, tx, f.alice, []*core.Market{f.eth}))
	assert.Equal(t, core.ErrNonzeroBorrowBalance, c.ExitMarket(ctx, tx, f.alice, f.eth))

	tx.Position(f.alice, f.eth.ID).BorrowPrincipal.Clear()
	f.eth.TotalBorrows.Clear()
	require.Nil(t, c.ExitMarket(ctx, tx, f.alice, f.eth))
	require.Nil(t, c.ExitMarket(ctx, tx, f.alice, f.dai))
	assert.Empty(t, tx.AssetsIn(f.alice))
}

func TestBorrowAllowed(t *testing.T) {
	f := setup(t)
	c, ctx, tx := f.comptroller, f.ctx, f.tx

	assert.Nil(t, c.BorrowAllowed(ctx, tx, f.eth, f.alice, uint256.NewInt(275)))
	assert.Equal(t, core.ErrInsufficientLiquidity, c.BorrowAllowed(ctx, tx, f.eth, f.alice, uint256.NewInt(276)))

	require.Nil(t, c.SetBorrowCap(ctx, tx, f.eth, uint256.NewInt(150)))
	assert.Equal(t, core.ErrBorrowCapReached, c.BorrowAllowed(ctx, tx, f.eth, f.alice, uint256.NewInt(51)))
	assert.Nil(t, c.BorrowAllowed(ctx, tx, f.eth, f.alice, uint256.NewInt(49)))
}

func TestLiquidation(t *testing.T) {
	f := setup(t)
	c, ctx, tx := f.comptroller, f.ctx, f.tx
	bob := tx.Account("bob")

	assert.Equal(t, core.ErrInsufficientShortfall, c.LiquidateBorrowAllowed(ctx, tx, f.eth, f.dai, bob, f.alice, uint256.NewInt(10)))

	// ETH at 10: debt 1000 against 750 of collateral
	require.Nil(t, f.oracle.SetUnderlyingPrice(ctx, f.eth, e18(10)))

	assert.Equal(t, core.ErrRepayExceedsMax, c.LiquidateBorrowAllowed(ctx, tx, f.eth, f.dai, bob, f.alice, uint256.NewInt(51)))
	assert.Nil(t, c.LiquidateBorrowAllowed(ctx, tx, f.eth, f.dai, bob, f.alice, uint256.NewInt(50)))

	// 50 * 1.08 * 10 / 1
	seize, err := c.LiquidateCalculateSeizeTokens(ctx, tx, f.eth, f.dai, uint256.NewInt(50))
	require.Nil(t, err)
	assert.Equal(t, uint64(540), seize.Uint64())
}
