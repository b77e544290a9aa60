package priceoracle

import (
	"context"
	"fmt"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/id"
	"moneymarket/pkg/number"
	"moneymarket/service/operation"
	"moneymarket/worker"

	"github.com/fox-one/pkg/logger"
	uuidutil "github.com/fox-one/pkg/uuid"
	"golang.org/x/sync/errgroup"
)

// Worker pulls tickers for every listed market and journals them as
// set price operations signed by the admin, one per market per interval
type Worker struct {
	worker.TickWorker
	admin      string
	interval   time.Duration
	decimals   map[string]int32
	markets    core.IMarketStore
	tickers    core.IPriceTickerService
	operations *operation.Service
}

// New new price oracle worker
func New(cfg *core.Config, markets core.IMarketStore, tickers core.IPriceTickerService, operations *operation.Service) *Worker {
	interval := cfg.PriceOracle.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	decimals := map[string]int32{}
	for _, a := range cfg.Assets {
		decimals[a.Symbol] = a.Decimals
	}

	w := &Worker{
		admin:      cfg.App.Admin,
		interval:   interval,
		decimals:   decimals,
		markets:    markets,
		tickers:    tickers,
		operations: operations,
	}
	w.Delay = interval
	return w
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx, time.Now())
	})
}

func (w *Worker) onWork(ctx context.Context, now time.Time) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")
	ctx = logger.WithContext(ctx, log)

	markets, err := w.markets.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("fetch all markets error")
		return err
	}

	var g errgroup.Group
	for _, m := range markets {
		if !m.IsListed {
			continue
		}

		market := m
		g.Go(func() error {
			return w.post(ctx, market, now)
		})
	}

	return g.Wait()
}

func (w *Worker) post(ctx context.Context, market *core.MarketSnapshot, now time.Time) error {
	log := logger.FromContext(ctx).WithField("market", market.Symbol)

	ticker, err := w.tickers.PullPriceTicker(ctx, market.Underlying, now)
	if err != nil {
		log.WithError(err).Errorln("pull price ticker error")
		return err
	}

	if !ticker.Price.IsPositive() {
		log.Errorln("invalid ticker price:", ticker.Symbol, ":", ticker.Price)
		return nil
	}

	digits := w.decimals[market.Underlying]
	if digits <= 0 {
		digits = number.MantissaDigits
	}

	price, err := number.Mantissa(ticker.Price, 2*number.MantissaDigits-digits)
	if err != nil {
		return err
	}

	seconds := int64(w.interval / time.Second)
	if seconds <= 0 {
		seconds = 1
	}

	window := now.Unix() / seconds
	trace := uuidutil.Modify(id.TraceIDFrom(market.Symbol), fmt.Sprintf("price:%d", window))
	if _, err := w.operations.Submit(ctx, trace, w.admin, &core.SetPriceAction{
		Market: market.Symbol,
		Price:  price.Dec(),
	}); err != nil {
		log.WithError(err).Errorln("submit price")
		return err
	}

	return nil
}
