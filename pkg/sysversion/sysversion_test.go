package sysversion

import (
	"context"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

func TestCheck(t *testing.T) {
	ctx := context.Background()
	database := db.MustOpen(db.SqliteInMemory())
	database.Update().DB().SetMaxOpenConns(1)
	assert.Equal(t, nil, db.Migrate(database))

	properties := propertystore.New(database)

	assert.Equal(t, nil, Check(ctx, properties))
	v, err := ReadSysVersion(ctx, properties)
	assert.Equal(t, nil, err)
	assert.Equal(t, Current, v)

	assert.Equal(t, nil, Check(ctx, properties))

	assert.Equal(t, nil, properties.Save(ctx, SysVersionKey, Current+1))
	assert.NotEqual(t, nil, Check(ctx, properties))
}
