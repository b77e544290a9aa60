package block

import (
	"context"
	"time"

	"moneymarket/core"
	"moneymarket/internal/compound"
)

type service struct {
	clock compound.Clock
}

// New new block service
func New(config *core.Config) core.IBlockService {
	return &service{
		clock: compound.NewClock(config.App.Genesis, config.App.SecondsPerBlock),
	}
}

// CurrentBlock current block
func (s *service) CurrentBlock(ctx context.Context) (int64, error) {
	return s.clock.CurrentBlock()
}

// GetBlock get block by time
func (s *service) GetBlock(ctx context.Context, t time.Time) (int64, error) {
	return s.clock.BlockAt(t)
}
