package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  admin: admin
  genesis: 1603366002
markets:
  - symbol: cDAI
    underlying: DAI
    collateral_factor: "0.75"
    price: "1"
assets:
  - symbol: DAI
    decimals: 18
    holders:
      - address: alice
        amount: "100"
`

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "lending.yaml")
	require.Nil(t, os.WriteFile(file, []byte(sample), 0o600))

	var cfg core.Config
	require.Nil(t, Load(file, &cfg))

	assert.Equal(t, "admin", cfg.App.Admin)
	assert.Equal(t, int64(15), cfg.App.SecondsPerBlock)
	assert.Equal(t, "0.5", cfg.Comptroller.CloseFactor.String())
	assert.Equal(t, "1.08", cfg.Comptroller.LiquidationIncentive.String())
	assert.Equal(t, time.Minute, cfg.PriceOracle.Interval)

	require.Len(t, cfg.Markets, 1)
	assert.Equal(t, "0.75", cfg.Markets[0].CollateralFactor.String())
	require.Len(t, cfg.Assets, 1)
	assert.Equal(t, "100", cfg.Assets[0].Holders[0].Amount.String())
}
