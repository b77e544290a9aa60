package sequencer

import (
	"context"
	"errors"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/id"
	"moneymarket/pkg/sysversion"
	"moneymarket/service/protocol"
	"moneymarket/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
)

const (
	checkpointKey = "operations_checkpoint"
	limit         = 500
)

type (
	// Sequencer applies journaled operations to the protocol in id order and
	// records the outcome, the emitted events and the touched markets
	Sequencer struct {
		worker.TickWorker
		database      *db.DB
		protocol      *protocol.Protocol
		propertyStore property.Store
		operations    core.OperationStore
		events        core.EventStore
		markets       core.IMarketStore
		blocks        core.IBlockService

		// last operation applied in memory
		cursor uint64
		block  int64
		// outcome applied in memory but not yet persisted
		unsaved *result
	}

	result struct {
		op     *core.Operation
		events []*core.Event
	}
)

// New new sequencer
func New(
	database *db.DB,
	protocol *protocol.Protocol,
	propertyStore property.Store,
	operations core.OperationStore,
	events core.EventStore,
	markets core.IMarketStore,
	blocks core.IBlockService,
) *Sequencer {
	return &Sequencer{
		database:      database,
		protocol:      protocol,
		propertyStore: propertyStore,
		operations:    operations,
		events:        events,
		markets:       markets,
		blocks:        blocks,
	}
}

// Run replay the journal, then follow it
func (w *Sequencer) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "sequencer")
	ctx = logger.WithContext(ctx, log)

	if err := w.Replay(ctx); err != nil {
		return err
	}

	return w.StartTick(ctx, w.onWork)
}

// Replay re-apply every settled operation to rebuild the in memory ledger.
// Stops at the first pending operation.
func (w *Sequencer) Replay(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := sysversion.Check(ctx, w.propertyStore); err != nil {
		log.WithError(err).Errorln("sysversion.Check")
		return err
	}

	v, err := w.propertyStore.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get error")
		return err
	}
	checkpoint := uint64(v.Int64())

	for {
		ops, err := w.operations.List(ctx, w.cursor, limit)
		if err != nil {
			log.WithError(err).Errorln("operations.List")
			return err
		}

		for _, op := range ops {
			if op.Status == core.OperationStatusPending {
				return w.finishReplay(ctx, checkpoint)
			}

			if err := w.replay(ctx, op); err != nil {
				return err
			}
		}

		if len(ops) < limit {
			return w.finishReplay(ctx, checkpoint)
		}
	}
}

func (w *Sequencer) finishReplay(ctx context.Context, checkpoint uint64) error {
	log := logger.FromContext(ctx).WithField("cursor", w.cursor)
	if w.cursor < checkpoint {
		log.WithField("checkpoint", checkpoint).Errorln("journal behind checkpoint")
		return errors.New("journal behind checkpoint")
	}

	log.Infoln("replay done")
	return w.saveSnapshots(ctx, w.database, 0, nil)
}

func (w *Sequencer) replay(ctx context.Context, op *core.Operation) error {
	log := logger.FromContext(ctx).WithField("operation", op.TraceID)

	_, err := w.protocol.Apply(ctx, op)
	switch {
	case op.Status == core.OperationStatusApplied && err != nil:
		log.WithError(err).WithField("engine_bug", true).Errorln("applied operation fails on replay")
		return err
	case op.Status == core.OperationStatusRejected && err == nil:
		log.WithField("engine_bug", true).Errorln("rejected operation applies on replay")
		return errors.New("replay diverged")
	}

	w.cursor = op.ID
	w.block = op.Block
	return nil
}

func (w *Sequencer) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if w.unsaved != nil {
		if err := w.persist(ctx, w.unsaved); err != nil {
			return err
		}
	}

	ops, err := w.operations.List(ctx, w.cursor, limit)
	if err != nil {
		log.WithError(err).Errorln("operations.List")
		return err
	}

	if len(ops) == 0 {
		return worker.ErrNoMore
	}

	for _, op := range ops {
		if err := w.handleOperation(ctx, op); err != nil {
			return err
		}
	}

	return nil
}

func (w *Sequencer) handleOperation(ctx context.Context, op *core.Operation) error {
	log := logger.FromContext(ctx).WithField("operation", op.TraceID)
	ctx = logger.WithContext(ctx, log)

	if op.Status != core.OperationStatusPending {
		// settled by an earlier run that stopped before the checkpoint moved
		return w.replay(ctx, op)
	}

	block, err := w.blocks.GetBlock(ctx, op.CreatedAt)
	if err != nil {
		log.WithError(err).Errorln("blocks.GetBlock")
		block = w.block
	}
	if block < w.block {
		block = w.block
	}
	op.Block = block

	events, err := w.protocol.Apply(ctx, op)
	if err != nil {
		op.Status = core.OperationStatusRejected
		op.ErrorCode = int(core.CodeOf(err))
	} else {
		op.Status = core.OperationStatusApplied
	}

	w.cursor = op.ID
	w.block = op.Block
	w.unsaved = &result{op: op, events: events}
	return w.persist(ctx, w.unsaved)
}

func (w *Sequencer) persist(ctx context.Context, r *result) error {
	log := logger.FromContext(ctx)

	err := w.database.Tx(func(tx *db.DB) error {
		if err := w.operations.Update(ctx, tx, r.op); err != nil {
			return err
		}

		symbols := map[string]bool{}
		for idx, e := range r.events {
			e.OperationID = r.op.ID
			e.TraceID = id.EventTraceID(r.op.TraceID, idx)
			e.CreatedAt = time.Now()
			if err := w.events.Create(ctx, tx, e); err != nil {
				return err
			}

			if e.Market != "" {
				symbols[e.Market] = true
			}
		}

		if len(symbols) == 0 {
			return nil
		}

		return w.saveSnapshots(ctx, tx, r.op.ID, symbols)
	})
	if err != nil {
		log.WithError(err).Errorln("persist operation")
		return err
	}

	if err := w.propertyStore.Save(ctx, checkpointKey, r.op.ID); err != nil {
		log.WithError(err).Errorln("property.Save:", r.op.ID)
		return err
	}

	w.unsaved = nil
	return nil
}

// saveSnapshots store the markets named in symbols, every market if nil
func (w *Sequencer) saveSnapshots(ctx context.Context, tx *db.DB, operationID uint64, symbols map[string]bool) error {
	snapshots, err := w.protocol.Markets(ctx, w.block)
	if err != nil {
		return err
	}

	for _, s := range snapshots {
		if symbols != nil && !symbols[s.Symbol] {
			continue
		}

		s.OperationID = operationID
		if err := w.markets.Save(ctx, tx, s); err != nil {
			return err
		}
	}

	return nil
}
