package market

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type marketStore struct {
	db *db.DB
}

// New new market snapshot store
func New(db *db.DB) core.IMarketStore {
	return &marketStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.MarketSnapshot{})
		if err := tx.AutoMigrate(core.MarketSnapshot{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Save upsert by symbol, guarded by the snapshot version
func (s *marketStore) Save(ctx context.Context, tx *db.DB, snapshot *core.MarketSnapshot) error {
	var current core.MarketSnapshot
	err := tx.Update().Where("symbol=?", snapshot.Symbol).First(&current).Error
	if gorm.IsRecordNotFoundError(err) {
		snapshot.Version = 1
		return tx.Update().Create(snapshot).Error
	}

	if err != nil {
		return err
	}

	snapshot.ID = current.ID
	snapshot.CreatedAt = current.CreatedAt
	snapshot.Version = current.Version + 1

	update := tx.Update().Model(snapshot).Where("version=?", current.Version).Updates(map[string]interface{}{
		"cash":                  snapshot.Cash,
		"total_borrows":         snapshot.TotalBorrows,
		"total_reserves":        snapshot.TotalReserves,
		"total_supply":          snapshot.TotalSupply,
		"borrow_index":          snapshot.BorrowIndex,
		"exchange_rate":         snapshot.ExchangeRate,
		"borrow_rate_per_block": snapshot.BorrowRatePerBlock,
		"supply_rate_per_block": snapshot.SupplyRatePerBlock,
		"reserve_factor":        snapshot.ReserveFactor,
		"collateral_factor":     snapshot.CollateralFactor,
		"borrow_cap":            snapshot.BorrowCap,
		"is_listed":             snapshot.IsListed,
		"accrual_block":         snapshot.AccrualBlock,
		"operation_id":          snapshot.OperationID,
		"version":               snapshot.Version,
	})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *marketStore) Find(ctx context.Context, symbol string) (*core.MarketSnapshot, error) {
	var snapshot core.MarketSnapshot
	if err := s.db.View().Where("symbol=?", symbol).First(&snapshot).Error; err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (s *marketStore) All(ctx context.Context) ([]*core.MarketSnapshot, error) {
	var snapshots []*core.MarketSnapshot
	if err := s.db.View().Order("id").Find(&snapshots).Error; err != nil {
		return nil, err
	}

	return snapshots, nil
}
