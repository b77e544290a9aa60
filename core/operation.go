package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// OperationStatus operation status
type OperationStatus int

const (
	// OperationStatusPending waiting for the sequencer
	OperationStatusPending OperationStatus = iota
	// OperationStatusApplied committed to the ledger
	OperationStatusApplied
	// OperationStatusRejected aborted, ErrorCode says why
	OperationStatusRejected
)

func (s OperationStatus) String() string {
	switch s {
	case OperationStatusApplied:
		return "applied"
	case OperationStatusRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Operation one entry of the globally ordered operation journal
type Operation struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index" json:"trace_id"`
	Sender    string          `sql:"size:64" json:"sender"`
	Action    ActionType      `json:"action"`
	Body      []byte          `sql:"type:bytea" json:"-"`
	Status    OperationStatus `json:"status"`
	ErrorCode int             `json:"error_code,omitempty"`
	Block     int64           `json:"block"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Decode the action payload
func (o *Operation) Decode() (Action, error) {
	return DecodeAction(o.Action, o.Body)
}

// NewOperation encode an action for the journal
func NewOperation(traceID, sender string, action Action) (*Operation, error) {
	body, err := EncodeAction(action)
	if err != nil {
		return nil, err
	}

	return &Operation{
		TraceID: traceID,
		Sender:  sender,
		Action:  action.ActionType(),
		Body:    body,
	}, nil
}

// OperationStore operation journal
type OperationStore interface {
	// Create idempotent on trace id
	Create(ctx context.Context, op *Operation) error
	Update(ctx context.Context, tx *db.DB, op *Operation) error
	Find(ctx context.Context, traceID string) (*Operation, error)
	// List operations with id greater than fromID, ordered by id
	List(ctx context.Context, fromID uint64, limit int) ([]*Operation, error)
}
