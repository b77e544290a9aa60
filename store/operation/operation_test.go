package operation

import (
	"context"
	"testing"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *db.DB {
	database := db.MustOpen(db.SqliteInMemory())
	database.Update().DB().SetMaxOpenConns(1)
	require.Nil(t, db.Migrate(database))
	return database
}

func TestOperationStore(t *testing.T) {
	ctx := context.Background()
	database := openDB(t)
	store := New(database)

	op, err := core.NewOperation("8e2b7a1c-0d7a-4d2a-9d6e-2f0b1c5f1a01", "alice", &core.MintAction{Market: "cDAI", Amount: "1000"})
	require.Nil(t, err)
	require.Nil(t, store.Create(ctx, op))
	assert.Equal(t, uint64(1), op.ID)

	// same trace, same row
	dup, err := core.NewOperation(op.TraceID, "mallory", &core.BorrowAction{Market: "cDAI", Amount: "1"})
	require.Nil(t, err)
	require.Nil(t, store.Create(ctx, dup))
	assert.Equal(t, op.ID, dup.ID)
	assert.Equal(t, "alice", dup.Sender)

	second, err := core.NewOperation("8e2b7a1c-0d7a-4d2a-9d6e-2f0b1c5f1a02", "bob", &core.AccrueInterestAction{Market: "cDAI"})
	require.Nil(t, err)
	require.Nil(t, store.Create(ctx, second))

	op.Status = core.OperationStatusRejected
	op.ErrorCode = int(core.ErrInsufficientLiquidity)
	op.Block = 7
	require.Nil(t, store.Update(ctx, database, op))

	found, err := store.Find(ctx, op.TraceID)
	require.Nil(t, err)
	assert.Equal(t, core.OperationStatusRejected, found.Status)
	assert.Equal(t, int64(7), found.Block)

	action, err := found.Decode()
	require.Nil(t, err)
	assert.Equal(t, &core.MintAction{Market: "cDAI", Amount: "1000"}, action)

	ops, err := store.List(ctx, op.ID, 10)
	require.Nil(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, second.TraceID, ops[0].TraceID)
}
