package priceoracle

import (
	"context"
	"testing"
	"time"

	"moneymarket/core"
	"moneymarket/service/operation"
	"moneymarket/store/market"
	opstore "moneymarket/store/operation"

	"github.com/fox-one/pkg/store/db"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tickers map[string]decimal.Decimal

func (t tickers) PullPriceTicker(ctx context.Context, symbol string, at time.Time) (*core.PriceTicker, error) {
	return &core.PriceTicker{Symbol: symbol, Price: t[symbol], Timestamp: at.Unix()}, nil
}

func TestPostPrices(t *testing.T) {
	ctx := context.Background()
	database := db.MustOpen(db.SqliteInMemory())
	database.Update().DB().SetMaxOpenConns(1)
	require.Nil(t, db.Migrate(database))

	markets := market.New(database)
	for _, s := range []*core.MarketSnapshot{
		{Symbol: "cUSDC", Underlying: "USDC", IsListed: true},
		{Symbol: "cETH", Underlying: "ETH", IsListed: true},
		{Symbol: "cBTC", Underlying: "BTC"},
	} {
		require.Nil(t, markets.Save(ctx, database, s))
	}

	ops := opstore.New(database)
	cfg := &core.Config{
		App:         core.App{Admin: "admin"},
		PriceOracle: core.PriceOracleConf{Interval: time.Minute},
		Assets:      []core.AssetConf{{Symbol: "USDC", Decimals: 6}},
	}
	w := New(cfg, markets, tickers{
		"USDC": decimal.NewFromInt(1),
		"ETH":  decimal.NewFromInt(2000),
		"BTC":  decimal.NewFromInt(30000),
	}, operation.New(ops))

	now := time.Unix(1660000000, 0)
	require.Nil(t, w.onWork(ctx, now))
	// same window, same traces
	require.Nil(t, w.onWork(ctx, now.Add(time.Second)))

	list, err := ops.List(ctx, 0, 10)
	require.Nil(t, err)
	require.Len(t, list, 2)

	prices := map[string]string{}
	for _, op := range list {
		assert.Equal(t, "admin", op.Sender)
		action, err := op.Decode()
		require.Nil(t, err)
		a := action.(*core.SetPriceAction)
		prices[a.Market] = a.Price
	}

	assert.Equal(t, "1000000000000000000000000000000", prices["cUSDC"])
	assert.Equal(t, "2000000000000000000000", prices["cETH"])
}
