package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transaction helpers:
//     Begin a transaction from the pool with the requested options
//     Defer rollback, which fires when:
//         fn returns an error
//         fn panics (the panic is re-raised after rollback)
//     Run fn with the transaction
//     Commit when fn succeeded
//
// WithReadOnlySnapshot is what the report uses: every query inside fn sees
// the same committed state, and any write attempt fails.

// TxFunc is executed inside a transaction
type TxFunc func(pgx.Tx) error

// WithTransaction wraps fn in a read-write transaction with default isolation.
// Rolls back on error or panic, commits otherwise.
func WithTransaction(ctx context.Context, pool *pgxpool.Pool, fn TxFunc) error {
	return withTx(ctx, pool, pgx.TxOptions{}, fn)
}

// WithReadOnlySnapshot runs fn in a REPEATABLE READ, READ ONLY transaction
func WithReadOnlySnapshot(ctx context.Context, pool *pgxpool.Pool, fn TxFunc) error {
	return withTx(ctx, pool, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}, fn)
}

// WithTransactionResult is WithTransaction for a function that returns a value.
// On failure the zero value of T is returned.
func WithTransactionResult[T any](ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) (T, error)) (T, error) {
	var result T
	var fnErr error

	err := WithTransaction(ctx, pool, func(tx pgx.Tx) error {
		result, fnErr = fn(tx)
		return fnErr
	})

	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

func withTx(ctx context.Context, pool *pgxpool.Pool, opts pgx.TxOptions, fn TxFunc) (err error) {
	// Begin transaction
	tx, err := pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Rollback is a no-op after a successful commit
	defer func() {
		if p := recover(); p != nil {
			// panic → rollback, then re-raise
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			// error from fn or commit → rollback
			_ = tx.Rollback(ctx)
		}
	}()

	// Execute fn with the transaction
	if err = fn(tx); err != nil {
		return err
	}

	// Commit
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
