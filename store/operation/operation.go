package operation

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
)

type operationStore struct {
	db *db.DB
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Operation{})
		if err := tx.AutoMigrate(core.Operation{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// New new operation journal
func New(db *db.DB) core.OperationStore {
	return &operationStore{
		db: db,
	}
}

func (s *operationStore) Create(ctx context.Context, op *core.Operation) error {
	return s.db.Update().Where("trace_id=?", op.TraceID).FirstOrCreate(op).Error
}

func (s *operationStore) Update(ctx context.Context, tx *db.DB, op *core.Operation) error {
	return tx.Update().Model(op).Updates(map[string]interface{}{
		"status":     op.Status,
		"error_code": op.ErrorCode,
		"block":      op.Block,
	}).Error
}

func (s *operationStore) Find(ctx context.Context, traceID string) (*core.Operation, error) {
	var op core.Operation
	if err := s.db.View().Where("trace_id=?", traceID).First(&op).Error; err != nil {
		return nil, err
	}

	return &op, nil
}

func (s *operationStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Operation, error) {
	var ops []*core.Operation
	if err := s.db.View().Where("id > ?", fromID).Order("id").Limit(limit).Find(&ops).Error; err != nil {
		return nil, err
	}

	return ops, nil
}
