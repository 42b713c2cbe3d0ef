package tx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutorFallsBackToDB(t *testing.T) {
	db := &sql.DB{}
	ctx := context.Background()

	assert.Same(t, db, Executor(ctx, db))

	_, ok := From(WithTx(ctx, nil))
	assert.False(t, ok, "nil tx must not be stored")

	sqlTx := &sql.Tx{}
	got, ok := From(WithTx(ctx, sqlTx))
	assert.True(t, ok)
	assert.Same(t, sqlTx, got)
	assert.Same(t, sqlTx, Executor(WithTx(ctx, sqlTx), db))
}

func TestAfterCommit(t *testing.T) {
	var ran []string
	record := func(name string) func(context.Context) {
		return func(context.Context) { ran = append(ran, name) }
	}

	assert.False(t, AfterCommit(context.Background(), record("outside")), "no unit of work open")

	ctx, hooks := WithHooks(context.Background())
	assert.True(t, AfterCommit(ctx, record("first")))
	assert.True(t, AfterCommit(ctx, record("second")))
	assert.Empty(t, ran, "queued work waits for the commit")

	hooks.Run(ctx)
	assert.Equal(t, []string{"first", "second"}, ran)

	hooks.Run(ctx)
	assert.Len(t, ran, 2, "hooks run once")
}
