package worker

import (
	"context"
	"errors"
	"time"
)

// ErrNoMore nothing left to do this tick, wait the idle delay
var ErrNoMore = errors.New("no more work")

// Worker long running job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs onTick in a loop, backing off after errors
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick block until ctx is done
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	delay, errDelay := w.Delay, w.ErrDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	if errDelay <= 0 {
		errDelay = time.Second
	}

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onTick(ctx); err != nil {
				dur = errDelay
			} else {
				dur = delay
			}
		}
	}
}
