package cmd

import (
	"moneymarket/core"
	"moneymarket/service/asset"
	"moneymarket/service/block"
	"moneymarket/service/operation"
	"moneymarket/service/oracle"
	"moneymarket/service/protocol"
	eventstore "moneymarket/store/event"
	marketstore "moneymarket/store/market"
	operationstore "moneymarket/store/operation"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideDatabase() *db.DB {
	database := db.MustOpen(cfg.DB)
	if cfg.DB.Dialect == db.SqliteInMemory().Dialect {
		// one connection, an in memory sqlite is private to its connection
		database.Update().DB().SetMaxOpenConns(1)
	}

	return database
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideOperationStore(db *db.DB) core.OperationStore {
	return operationstore.New(db)
}

func provideEventStore(db *db.DB) core.EventStore {
	return eventstore.New(db)
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return marketstore.New(db)
}

// ------------------service------------------------------------

func provideBlockService() core.IBlockService {
	return block.New(provideConfig())
}

func provideTickerService() core.IPriceTickerService {
	return oracle.NewTickerService(cfg.PriceOracle)
}

func provideOperationService(operations core.OperationStore) *operation.Service {
	return operation.New(operations)
}

func provideProtocol() *protocol.Protocol {
	assets, err := asset.FromConfig(cfg.Assets)
	if err != nil {
		panic(err)
	}

	return protocol.New(core.RiskParams{Admin: cfg.App.Admin}, assets, oracle.NewSimple(""))
}
