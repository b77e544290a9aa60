package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"moneymarket/core"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplePriceOracle(t *testing.T) {
	ctx := context.Background()
	o := NewSimple("")
	assert.Equal(t, SimpleName, o.Name())

	market := &core.Market{Symbol: "cETH"}
	_, err := o.GetUnderlyingPrice(ctx, market)
	assert.Equal(t, core.ErrPriceUnavailable, err)

	require.Nil(t, o.SetUnderlyingPrice(ctx, market, uint256.NewInt(2000)))
	price, err := o.GetUnderlyingPrice(ctx, market)
	require.Nil(t, err)
	assert.Equal(t, uint64(2000), price.Uint64())

	// returned prices are copies
	price.SetUint64(1)
	price, _ = o.GetUnderlyingPrice(ctx, market)
	assert.Equal(t, uint64(2000), price.Uint64())

	require.Nil(t, o.SetUnderlyingPrice(ctx, market, new(uint256.Int)))
	_, err = o.GetUnderlyingPrice(ctx, market)
	assert.Equal(t, core.ErrPriceUnavailable, err)
}

func TestTickerServiceCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/api/v2/tickers/ETH", r.URL.Path)
		_, _ = w.Write([]byte(`{"provider":"test","price":"2000.5"}`))
	}))
	defer srv.Close()

	s := NewTickerService(core.PriceOracleConf{EndPoint: srv.URL, CacheTTL: time.Minute})
	ctx := context.Background()

	ticker, err := s.PullPriceTicker(ctx, "ETH", time.Now())
	require.Nil(t, err)
	assert.Equal(t, "ETH", ticker.Symbol)
	assert.Equal(t, "2000.5", ticker.Price.String())

	_, err = s.PullPriceTicker(ctx, "ETH", time.Now())
	require.Nil(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
