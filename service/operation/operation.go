package operation

import (
	"context"
	"fmt"

	"moneymarket/core"
	"moneymarket/pkg/id"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/logger"
	"github.com/jinzhu/gorm"
)

// ErrInvalidTraceID trace id is not a uuid
var ErrInvalidTraceID = fmt.Errorf("invalid trace id")

// Service accepts operations into the journal. Admission only validates the
// payload shape; everything else is decided when the sequencer applies it.
type Service struct {
	operations core.OperationStore
}

// New new operation service
func New(operations core.OperationStore) *Service {
	return &Service{operations: operations}
}

// Submit journal action from sender. Resubmitting a trace id returns the
// operation already journaled under it.
func (s *Service) Submit(ctx context.Context, traceID, sender string, action core.Action) (*core.Operation, error) {
	log := logger.FromContext(ctx)

	if traceID == "" {
		traceID = id.GenTraceID()
	} else if !id.IsTraceID(traceID) {
		return nil, ErrInvalidTraceID
	}

	if _, err := govalidator.ValidateStruct(action); err != nil {
		return nil, err
	}

	op, err := core.NewOperation(traceID, sender, action)
	if err != nil {
		return nil, err
	}

	if err := s.operations.Create(ctx, op); err != nil {
		log.WithError(err).Errorln("operations.Create")
		return nil, err
	}

	return op, nil
}

// Find operation by trace id, nil if unknown
func (s *Service) Find(ctx context.Context, traceID string) (*core.Operation, error) {
	op, err := s.operations.Find(ctx, traceID)
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}

	return op, err
}
