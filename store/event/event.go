package event

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
)

type eventStore struct {
	db *db.DB
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Event{})
		if err := tx.AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// New new event store
func New(db *db.DB) core.EventStore {
	return &eventStore{
		db: db,
	}
}

func (s *eventStore) Create(ctx context.Context, tx *db.DB, event *core.Event) error {
	return tx.Update().Where("trace_id=?", event.TraceID).FirstOrCreate(event).Error
}

func (s *eventStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Event, error) {
	var events []*core.Event
	if err := s.db.View().Where("id > ?", fromID).Order("id").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (s *eventStore) ListByOperation(ctx context.Context, operationID uint64) ([]*core.Event, error) {
	var events []*core.Event
	if err := s.db.View().Where("operation_id=?", operationID).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

// ListByAccount accounts is stored as an array literal with every element
// quoted, matching the quotes keeps one address from matching another it
// prefixes
func (s *eventStore) ListByAccount(ctx context.Context, address string, fromID uint64, limit int) ([]*core.Event, error) {
	var events []*core.Event
	query := s.db.View().
		Where("id > ?", fromID).
		Where("accounts LIKE ?", "%\""+address+"\"%").
		Order("id").
		Limit(limit)

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
