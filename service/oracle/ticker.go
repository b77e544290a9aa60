package oracle

import (
	"context"
	"fmt"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// TickerService pulls tickers from the configured price endpoint. Results
// are cached per symbol and concurrent pulls for one symbol share a request.
type TickerService struct {
	endpoint string
	cache    gcache.Cache
	sf       *singleflight.Group
}

// NewTickerService cache tickers for ttl
func NewTickerService(cfg core.PriceOracleConf) *TickerService {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Second
	}

	return &TickerService{
		endpoint: cfg.EndPoint,
		cache:    gcache.New(1024).LRU().Expiration(ttl).Build(),
		sf:       &singleflight.Group{},
	}
}

// PullPriceTicker pull price ticker
func (s *TickerService) PullPriceTicker(ctx context.Context, symbol string, t time.Time) (*core.PriceTicker, error) {
	key := fmt.Sprintf("ticker:%s", symbol)
	if v, err := s.cache.Get(key); err == nil {
		if ticker, ok := v.(*core.PriceTicker); ok {
			return ticker, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		ticker, err := s.pull(ctx, symbol, t)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(key, ticker)
		return ticker, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.PriceTicker), nil
}

func (s *TickerService) pull(ctx context.Context, symbol string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.endpoint, symbol, t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", url)

	var ticker core.PriceTicker
	if _, err := resthttp.Execute(resthttp.Request(ctx), "GET", url, nil, &ticker); err != nil {
		return nil, err
	}

	if ticker.Symbol == "" {
		ticker.Symbol = symbol
	}

	return &ticker, nil
}
