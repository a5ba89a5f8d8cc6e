package main

import (
	"context"
	"database/sql"
	"time"

	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/tx"
)

const defaultRequestTxTimeout = 5 * time.Second

// requestPostgresTx runs workflow side effects in one database transaction.
// The transaction rides the context, so every store participating in an
// approval writes through the same *sql.Tx.
type requestPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newRequestPostgresTx(db *sql.DB) *requestPostgresTx {
	return &requestPostgresTx{db: db}
}

func (t *requestPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultRequestTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sqlTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		return err
	}

	return sqlTx.Commit()
}
