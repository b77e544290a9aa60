package protocol

import (
	"context"
	"testing"

	"moneymarket/core"
	"moneymarket/service/asset"
	"moneymarket/service/oracle"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	admin = "admin"
	alice = "alice"
	bob   = "bob"
	carol = "carol"

	unlimited = "1000000000000000000000000"
)

type fixture struct {
	ctx      context.Context
	protocol *Protocol
	assets   *asset.Service
}

func testConfig() *core.Config {
	one := decimal.NewFromInt(1)
	holders := []core.HolderConf{
		{Address: alice, Amount: one},
		{Address: bob, Amount: one},
		{Address: carol, Amount: one},
	}

	return &core.Config{
		App: core.App{Admin: admin},
		Comptroller: core.ComptrollerConf{
			CloseFactor:          decimal.New(5, -1),
			LiquidationIncentive: decimal.New(108, -2),
		},
		Markets: []core.MarketConf{
			{
				Symbol:           "cDAI",
				Underlying:       "DAI",
				CollateralFactor: decimal.New(75, -2),
				Price:            one,
			},
			{
				Symbol:                "cUSDC",
				Underlying:            "USDC",
				BaseRatePerYear:       decimal.New(5, -2),
				MultiplierPerYear:     decimal.New(12, -2),
				JumpMultiplierPerYear: decimal.NewFromInt(4),
				Kink:                  decimal.New(8, -1),
				ReserveFactor:         decimal.New(1, -1),
				CollateralFactor:      decimal.New(75, -2),
				Price:                 one,
			},
		},
		Assets: []core.AssetConf{
			{Symbol: "DAI", Holders: holders},
			{Symbol: "USDC", Holders: holders},
		},
	}
}

func setup(t *testing.T) *fixture {
	ctx := context.Background()
	cfg := testConfig()

	assets, err := asset.FromConfig(cfg.Assets)
	require.Nil(t, err)

	p := New(core.RiskParams{Admin: admin}, assets, oracle.NewSimple(""))
	events, err := p.Bootstrap(ctx, cfg)
	require.Nil(t, err)
	require.NotEmpty(t, events)

	f := &fixture{ctx: ctx, protocol: p, assets: assets}
	for _, user := range []string{alice, bob, carol} {
		f.exec(t, user, 0, &core.ApproveAction{Asset: "DAI", Spender: "cDAI", Amount: unlimited})
		f.exec(t, user, 0, &core.ApproveAction{Asset: "USDC", Spender: "cUSDC", Amount: unlimited})
	}

	return f
}

func (f *fixture) exec(t *testing.T, sender string, block int64, action core.Action) []*core.Event {
	events, err := f.protocol.Execute(f.ctx, sender, block, action)
	require.Nil(t, err, action.ActionType().String())
	return events
}

func (f *fixture) balance(t *testing.T, symbol, owner string) uint64 {
	token, err := f.assets.Find(f.ctx, symbol)
	require.Nil(t, err)
	v, err := token.BalanceOf(f.ctx, owner)
	require.Nil(t, err)
	return v.Uint64()
}

func (f *fixture) liquidity(t *testing.T, address string, block int64) *core.AccountLiquidity {
	l, err := f.protocol.AccountLiquidity(f.ctx, address, block)
	require.Nil(t, err)
	assert.False(t, !l.Liquidity.IsZero() && !l.Shortfall.IsZero(), "liquidity and shortfall both nonzero")
	return l
}

// alice supplies 1000 DAI as collateral, bob supplies the USDC she borrows
func (f *fixture) collateralized(t *testing.T) {
	f.exec(t, alice, 1, &core.MintAction{Market: "cDAI", Amount: "1000"})
	f.exec(t, alice, 1, &core.EnterMarketsAction{Markets: []string{"cDAI"}})
	f.exec(t, bob, 1, &core.MintAction{Market: "cUSDC", Amount: "10000"})
}

func TestBorrowWithinCollateralFactor(t *testing.T) {
	f := setup(t)
	f.collateralized(t)

	l := f.liquidity(t, alice, 1)
	assert.Equal(t, uint64(750), l.Liquidity.Uint64())

	_, err := f.protocol.Execute(f.ctx, alice, 1, &core.BorrowAction{Market: "cUSDC", Amount: "751"})
	assert.Equal(t, core.ErrInsufficientLiquidity, core.CodeOf(err))

	f.exec(t, alice, 1, &core.BorrowAction{Market: "cUSDC", Amount: "750"})
	assert.Equal(t, uint64(750), f.balance(t, "USDC", alice)-1e18)

	l = f.liquidity(t, alice, 1)
	assert.True(t, l.Liquidity.IsZero())
	assert.True(t, l.Shortfall.IsZero())

	_, err = f.protocol.Execute(f.ctx, alice, 1, &core.ExitMarketAction{Market: "cDAI"})
	assert.Equal(t, core.ErrInsufficientLiquidity, core.CodeOf(err))
}

func TestBorrowRequiresMembership(t *testing.T) {
	f := setup(t)
	f.exec(t, alice, 1, &core.MintAction{Market: "cDAI", Amount: "1000"})
	f.exec(t, bob, 1, &core.MintAction{Market: "cUSDC", Amount: "10000"})

	_, err := f.protocol.Execute(f.ctx, alice, 1, &core.BorrowAction{Market: "cUSDC", Amount: "1"})
	assert.Equal(t, core.ErrInsufficientLiquidity, core.CodeOf(err))
}

func TestSupportMarketTwice(t *testing.T) {
	f := setup(t)

	_, err := f.protocol.Execute(f.ctx, admin, 1, &core.SupportMarketAction{Market: "cDAI"})
	assert.Equal(t, core.ErrAlreadyListed, core.CodeOf(err))

	_, err = f.protocol.Execute(f.ctx, admin, 1, &core.NewMarketAction{Symbol: "cDAI", Underlying: "DAI"})
	assert.Equal(t, core.ErrAlreadyListed, core.CodeOf(err))
}

func TestSetCollateralFactorWithoutPrice(t *testing.T) {
	f := setup(t)
	f.exec(t, admin, 1, &core.NewMarketAction{Symbol: "cWBTC", Underlying: "WBTC"})

	_, err := f.protocol.Execute(f.ctx, admin, 1, &core.SetCollateralFactorAction{Market: "cWBTC", Factor: "500000000000000000"})
	assert.Equal(t, core.ErrMarketNotListed, core.CodeOf(err))

	f.exec(t, admin, 1, &core.SupportMarketAction{Market: "cWBTC"})

	_, err = f.protocol.Execute(f.ctx, admin, 1, &core.SetCollateralFactorAction{Market: "cWBTC", Factor: "500000000000000000"})
	assert.Equal(t, core.ErrPriceUnavailable, core.CodeOf(err))

	_, err = f.protocol.Execute(f.ctx, admin, 1, &core.SetCollateralFactorAction{Market: "cWBTC", Factor: "950000000000000000"})
	assert.Equal(t, core.ErrInvalidFactor, core.CodeOf(err))

	f.exec(t, admin, 1, &core.SetCollateralFactorAction{Market: "cWBTC", Factor: "0"})
	f.exec(t, admin, 1, &core.SetPriceAction{Market: "cWBTC", Price: "20000000000000000000000"})
	f.exec(t, admin, 1, &core.SetCollateralFactorAction{Market: "cWBTC", Factor: "500000000000000000"})

	m, err := f.protocol.Market(f.ctx, "cWBTC", 1)
	require.Nil(t, err)
	assert.Equal(t, "0.5", m.CollateralFactor.String())
}

func TestAdminOnly(t *testing.T) {
	f := setup(t)

	_, err := f.protocol.Execute(f.ctx, alice, 1, &core.SetCloseFactorAction{Factor: "900000000000000000"})
	assert.Equal(t, core.ErrUnauthorized, core.CodeOf(err))

	_, err = f.protocol.Execute(f.ctx, admin, 1, &core.SetCloseFactorAction{Factor: "50000000000000000"})
	assert.Equal(t, core.ErrInvalidCloseFactor, core.CodeOf(err))

	_, err = f.protocol.Execute(f.ctx, admin, 1, &core.SetLiquidationIncentiveAction{Incentive: "900000000000000000"})
	assert.Equal(t, core.ErrInvalidIncentive, core.CodeOf(err))

	_, err = f.protocol.Execute(f.ctx, admin, 1, &core.SetPriceOracleAction{Oracle: "chainlink"})
	assert.Equal(t, core.ErrOracleNotFound, core.CodeOf(err))
}

func TestMintRedeemRoundTrip(t *testing.T) {
	f := setup(t)
	before := f.balance(t, "DAI", alice)

	events := f.exec(t, alice, 1, &core.MintAction{Market: "cDAI", Amount: "1000"})
	require.NotEmpty(t, events)
	assert.Equal(t, core.EventMint, events[len(events)-1].Type)
	assert.Equal(t, before-1000, f.balance(t, "DAI", alice))

	positions, err := f.protocol.Positions(f.ctx, alice, 1)
	require.Nil(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "1000", positions[0].Claims.String())

	_, err = f.protocol.Execute(f.ctx, alice, 1, &core.RedeemAction{Market: "cDAI", Tokens: "1001"})
	assert.Equal(t, core.ErrInsufficientBalance, core.CodeOf(err))

	f.exec(t, alice, 2, &core.RedeemUnderlyingAction{Market: "cDAI", Amount: "400"})
	f.exec(t, alice, 2, &core.RedeemAction{Market: "cDAI", Tokens: "600"})
	assert.Equal(t, before, f.balance(t, "DAI", alice))

	m, err := f.protocol.Market(f.ctx, "cDAI", 2)
	require.Nil(t, err)
	assert.True(t, m.Cash.IsZero())
	assert.True(t, m.TotalSupply.IsZero())
}

func TestFailedTransferLeavesLedger(t *testing.T) {
	f := setup(t)

	// dave holds no DAI and approved nothing
	_, err := f.protocol.Execute(f.ctx, "dave", 1, &core.MintAction{Market: "cDAI", Amount: "1000"})
	assert.Equal(t, core.ErrTransferFailed, core.CodeOf(err))

	m, err := f.protocol.Market(f.ctx, "cDAI", 1)
	require.Nil(t, err)
	assert.True(t, m.Cash.IsZero())
	assert.True(t, m.TotalSupply.IsZero())

	positions, err := f.protocol.Positions(f.ctx, "dave", 1)
	require.Nil(t, err)
	assert.Empty(t, positions)
}

func TestLiquidateBorrow(t *testing.T) {
	f := setup(t)
	f.collateralized(t)
	f.exec(t, alice, 1, &core.BorrowAction{Market: "cUSDC", Amount: "750"})

	liquidate := &core.LiquidateBorrowAction{Borrower: alice, Market: "cUSDC", Amount: "375", Collateral: "cDAI"}
	_, err := f.protocol.Execute(f.ctx, carol, 2, liquidate)
	assert.Equal(t, core.ErrInsufficientShortfall, core.CodeOf(err))

	_, err = f.protocol.Execute(f.ctx, alice, 2, liquidate)
	assert.Equal(t, core.ErrLiquidatorIsBorrower, core.CodeOf(err))

	// DAI halves, alice's 375 of collateral now backs 750 of debt
	f.exec(t, admin, 2, &core.SetPriceAction{Market: "cDAI", Price: "500000000000000000"})
	l := f.liquidity(t, alice, 2)
	assert.Equal(t, uint64(375), l.Shortfall.Uint64())

	_, err = f.protocol.Execute(f.ctx, carol, 2, &core.LiquidateBorrowAction{Borrower: alice, Market: "cUSDC", Amount: "376", Collateral: "cDAI"})
	assert.Equal(t, core.ErrRepayExceedsMax, core.CodeOf(err))

	usdc := f.balance(t, "USDC", carol)
	events := f.exec(t, carol, 2, liquidate)
	assert.Equal(t, core.EventLiquidateBorrow, events[len(events)-1].Type)
	assert.Equal(t, usdc-375, f.balance(t, "USDC", carol))

	positions, err := f.protocol.Positions(f.ctx, carol, 2)
	require.Nil(t, err)
	require.Len(t, positions, 1)
	// 375 * 1.08 * 1.0 / (0.5 * 1.0)
	assert.Equal(t, "810", positions[0].Claims.String())

	positions, err = f.protocol.Positions(f.ctx, alice, 2)
	require.Nil(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "190", positions[0].Claims.String())
	assert.Equal(t, "375", positions[1].Borrow.String())
}

func TestRepayBorrow(t *testing.T) {
	f := setup(t)
	f.collateralized(t)

	_, err := f.protocol.Execute(f.ctx, alice, 1, &core.RepayBorrowAction{Market: "cUSDC", Amount: "1"})
	assert.Equal(t, core.ErrNoBorrowBalance, core.CodeOf(err))

	f.exec(t, alice, 1, &core.BorrowAction{Market: "cUSDC", Amount: "500"})
	f.exec(t, bob, 1, &core.RepayBorrowBehalfAction{Market: "cUSDC", Borrower: alice, Amount: "100"})

	usdc := f.balance(t, "USDC", alice)
	// clamped to what is owed
	f.exec(t, alice, 1, &core.RepayBorrowAction{Market: "cUSDC", Amount: "1000"})
	assert.Equal(t, usdc-400, f.balance(t, "USDC", alice))

	f.exec(t, alice, 1, &core.ExitMarketAction{Market: "cDAI"})
	assert.Empty(t, f.protocol.AssetsIn(alice))
}

func TestAccrueInterest(t *testing.T) {
	f := setup(t)
	f.collateralized(t)
	f.exec(t, admin, 1, &core.SetBorrowCapAction{Market: "cUSDC", Cap: "800"})

	_, err := f.protocol.Execute(f.ctx, alice, 1, &core.BorrowAction{Market: "cUSDC", Amount: "801"})
	assert.Equal(t, core.ErrBorrowCapReached, core.CodeOf(err))

	f.exec(t, alice, 1, &core.BorrowAction{Market: "cUSDC", Amount: "700"})
	before, err := f.protocol.Market(f.ctx, "cUSDC", 1)
	require.Nil(t, err)

	events := f.exec(t, bob, 1000, &core.AccrueInterestAction{Market: "cUSDC"})
	require.Len(t, events, 1)
	assert.Equal(t, core.EventAccrueInterest, events[0].Type)

	assert.Empty(t, f.exec(t, bob, 1000, &core.AccrueInterestAction{Market: "cUSDC"}))

	after, err := f.protocol.Market(f.ctx, "cUSDC", 1000)
	require.Nil(t, err)
	assert.True(t, after.BorrowIndex.GreaterThan(before.BorrowIndex))
	assert.Equal(t, int64(1000), after.AccrualBlock)
}

func TestUnlistedMarketRejected(t *testing.T) {
	f := setup(t)
	f.exec(t, admin, 1, &core.NewMarketAction{Symbol: "cWBTC", Underlying: "WBTC"})

	_, err := f.protocol.Execute(f.ctx, bob, 10, &core.AccrueInterestAction{Market: "cWBTC"})
	assert.Equal(t, core.ErrMarketNotListed, core.CodeOf(err))

	_, err = f.protocol.Execute(f.ctx, bob, 10, &core.AccrueInterestAction{Market: "cBAT"})
	assert.Equal(t, core.ErrMarketNotListed, core.CodeOf(err))

	_, err = f.protocol.Execute(f.ctx, alice, 1, &core.EnterMarketsAction{Markets: []string{"cWBTC"}})
	assert.Equal(t, core.ErrMarketNotListed, core.CodeOf(err))

	_, err = f.protocol.Execute(f.ctx, alice, 1, &core.EnterMarketsAction{})
	assert.Equal(t, core.ErrInvalidAmount, core.CodeOf(err))
	assert.Empty(t, f.protocol.AssetsIn(alice))

	f.exec(t, admin, 1, &core.SupportMarketAction{Market: "cWBTC"})
	f.exec(t, bob, 10, &core.AccrueInterestAction{Market: "cWBTC"})
}

func TestMarketsView(t *testing.T) {
	f := setup(t)

	markets, err := f.protocol.Markets(f.ctx, 0)
	require.Nil(t, err)
	require.Len(t, markets, 2)
	assert.Equal(t, "cDAI", markets[0].Symbol)
	assert.True(t, markets[1].IsListed)
	assert.Equal(t, "0.75", markets[1].CollateralFactor.String())

	price, err := f.protocol.Price(f.ctx, "cUSDC")
	require.Nil(t, err)
	assert.Equal(t, uint256.NewInt(1e18), price)
	assert.Equal(t, oracle.SimpleName, f.protocol.Params().Oracle)
}
