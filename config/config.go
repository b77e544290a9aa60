package config

import (
	"time"

	"moneymarket/core"

	configUtil "github.com/fox-one/pkg/config"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LENDING")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultConfig(config)
	return nil
}

func defaultConfig(cfg *core.Config) {
	if cfg.DB.Dialect == "" {
		cfg.DB = db.SqliteInMemory()
	}

	if cfg.App.SecondsPerBlock <= 0 {
		cfg.App.SecondsPerBlock = 15
	}

	if cfg.Comptroller.CloseFactor.IsZero() {
		cfg.Comptroller.CloseFactor = decimal.New(5, -1)
	}

	if cfg.Comptroller.LiquidationIncentive.IsZero() {
		cfg.Comptroller.LiquidationIncentive = decimal.New(108, -2)
	}

	if cfg.PriceOracle.Interval <= 0 {
		cfg.PriceOracle.Interval = time.Minute
	}

	if cfg.PriceOracle.CacheTTL <= 0 {
		cfg.PriceOracle.CacheTTL = 10 * time.Second
	}
}
