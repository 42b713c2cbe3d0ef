package main

import (
	"context"
	"database/sql"
	"time"

	"arbiter/internal/resolver/service"
	resolverstore "arbiter/internal/resolver/store"
	dErrors "arbiter/pkg/domain-errors"
	txcontext "arbiter/pkg/platform/tx"
)

const defaultResolverTxTimeout = 5 * time.Second

// resolverPostgresTx opens one SQL transaction per operation and hands the
// store a ctx carrying it, so account writes and outbox rows commit together.
type resolverPostgresTx struct {
	db      *sql.DB
	store   *resolverstore.Postgres
	timeout time.Duration
}

func newResolverPostgresTx(db *sql.DB, store *resolverstore.Postgres, timeout time.Duration) *resolverPostgresTx {
	return &resolverPostgresTx{db: db, store: store, timeout: timeout}
}

func (t *resolverPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, store service.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultResolverTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx), t.store); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		if ctx.Err() != nil {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction timed out")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit transaction")
	}
	return nil
}
