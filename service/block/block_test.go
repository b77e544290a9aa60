package block

import (
	"context"
	"testing"
	"time"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBlock(t *testing.T) {
	ctx := context.Background()
	genesis := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(&core.Config{App: core.App{Genesis: genesis.Unix(), SecondsPerBlock: 10}})

	block, err := s.GetBlock(ctx, genesis.Add(95*time.Second))
	require.Nil(t, err)
	assert.Equal(t, int64(9), block)

	_, err = s.GetBlock(ctx, genesis.Add(-time.Second))
	assert.NotNil(t, err)

	current, err := s.CurrentBlock(ctx)
	require.Nil(t, err)
	assert.True(t, current > block)
}
