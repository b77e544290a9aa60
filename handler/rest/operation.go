package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/param"
	"moneymarket/handler/render"
	"moneymarket/handler/request"
	"moneymarket/handler/views"
	"moneymarket/service/operation"

	"github.com/fox-one/pkg/logger"
	"github.com/twitchtv/twirp"
)

func submitOperationHandler(operations *operation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sender, ok := request.Sender(ctx)
		if !ok {
			render.Error(w, twirp.NewError(twirp.Unauthenticated, "missing sender"))
			return
		}

		var body struct {
			TraceID string          `json:"trace_id"`
			Action  string          `json:"action" valid:"required"`
			Params  json.RawMessage `json:"params" valid:"-"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		action := core.NewAction(core.ParseActionType(body.Action))
		if action == nil {
			render.Error(w, core.ErrUnknownAction)
			return
		}

		if len(body.Params) > 0 {
			if err := json.Unmarshal(body.Params, action); err != nil {
				render.BadRequest(w, err)
				return
			}
		}

		op, err := operations.Submit(ctx, body.TraceID, sender, action)
		if err != nil {
			if errors.Is(err, operation.ErrInvalidTraceID) {
				render.Error(w, twirp.InvalidArgumentError("trace_id", err.Error()))
				return
			}

			logger.FromContext(ctx).WithError(err).Infoln("submit operation")
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, views.OperationView(op, nil))
	}
}

func operationHandler(operations *operation.Service, events core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			TraceID string `json:"trace_id" valid:"uuid,required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		op, err := operations.Find(ctx, params.TraceID)
		if err != nil {
			render.Error(w, err)
			return
		}

		if op == nil {
			render.Error(w, twirp.NotFoundError("operation not found"))
			return
		}

		var list []*core.Event
		if op.Status == core.OperationStatusApplied {
			if list, err = events.ListByOperation(ctx, op.ID); err != nil {
				render.Error(w, err)
				return
			}
		}

		render.JSON(w, views.OperationView(op, list))
	}
}
