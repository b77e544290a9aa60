package views

import (
	"time"

	"moneymarket/core"
)

// Operation operation view
type Operation struct {
	ID        uint64        `json:"id"`
	TraceID   string        `json:"trace_id"`
	Sender    string        `json:"sender"`
	Action    string        `json:"action"`
	Params    core.Action   `json:"params,omitempty"`
	Status    string        `json:"status"`
	Error     string        `json:"error,omitempty"`
	ErrorCode int           `json:"error_code,omitempty"`
	Block     int64         `json:"block"`
	CreatedAt time.Time     `json:"created_at"`
	Events    []*core.Event `json:"events,omitempty"`
}

// OperationView decoded operation with its events
func OperationView(op *core.Operation, events []*core.Event) Operation {
	v := Operation{
		ID:        op.ID,
		TraceID:   op.TraceID,
		Sender:    op.Sender,
		Action:    op.Action.String(),
		Status:    op.Status.String(),
		ErrorCode: op.ErrorCode,
		Block:     op.Block,
		CreatedAt: op.CreatedAt,
		Events:    events,
	}

	if action, err := op.Decode(); err == nil {
		v.Params = action
	}

	if op.ErrorCode != 0 {
		v.Error = core.ErrorCode(op.ErrorCode).Name()
	}

	return v
}
