package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config lending engine config
type Config struct {
	App         App             `json:"app"`
	DB          db.Config       `json:"db"`
	Comptroller ComptrollerConf `json:"comptroller"`
	Markets     []MarketConf    `json:"markets"`
	Assets      []AssetConf     `json:"assets"`
	PriceOracle PriceOracleConf `json:"price_oracle"`
}

// App app config
type App struct {
	Admin           string `json:"admin"`
	Genesis         int64  `json:"genesis"`
	SecondsPerBlock int64  `json:"seconds_per_block"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(address string) bool {
	return c.App.Admin != "" && c.App.Admin == address
}

// ComptrollerConf genesis risk parameters, human decimals
type ComptrollerConf struct {
	CloseFactor          decimal.Decimal `json:"close_factor"`
	LiquidationIncentive decimal.Decimal `json:"liquidation_incentive"`
}

// MarketConf a market created, listed and configured at genesis
type MarketConf struct {
	Symbol                string          `json:"symbol"`
	Underlying            string          `json:"underlying"`
	BaseRatePerYear       decimal.Decimal `json:"base_rate_per_year"`
	MultiplierPerYear     decimal.Decimal `json:"multiplier_per_year"`
	JumpMultiplierPerYear decimal.Decimal `json:"jump_multiplier_per_year"`
	Kink                  decimal.Decimal `json:"kink"`
	ReserveFactor         decimal.Decimal `json:"reserve_factor"`
	CollateralFactor      decimal.Decimal `json:"collateral_factor"`
	InitialExchangeRate   decimal.Decimal `json:"initial_exchange_rate"`
	BorrowCap             decimal.Decimal `json:"borrow_cap"`
	// Price optional genesis price in USD per whole token
	Price decimal.Decimal `json:"price"`
}

// AssetConf underlying token with its genesis allocation
type AssetConf struct {
	Symbol   string       `json:"symbol"`
	Decimals int32        `json:"decimals"`
	Holders  []HolderConf `json:"holders"`
}

// HolderConf genesis balance, whole tokens
type HolderConf struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

// PriceOracleConf price oracle config
type PriceOracleConf struct {
	EndPoint string        `json:"end_point"`
	Interval time.Duration `json:"interval"`
	CacheTTL time.Duration `json:"cache_ttl"`
}
