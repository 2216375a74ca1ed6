// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package store provides the storage plumbing shared by resource backends:
// the generic in-memory store, the PostgreSQL pool and schema migrations.
package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/inkpost/inkpost/internal/resource"
)

// Querier is the subset of *pgxpool.Pool used by the relational stores.
// pgxmock.PgxPoolIface satisfies it in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

// Connect parameters.
const (
	connectBaseDelay  = 250 * time.Millisecond
	connectMaxDelay   = 5 * time.Second
	connectMaxRetries = 5
)

// Connect opens a connection pool and waits until the database answers a
// ping. Startup pings are retried with capped exponential backoff; requests
// served afterwards are never retried.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "create pool").Wrap(err)
	}

	backoff := retry.WithMaxRetries(connectMaxRetries,
		retry.WithCappedDuration(connectMaxDelay, retry.NewExponential(connectBaseDelay)))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			slog.WarnContext(ctx, "database not ready", "error", pingErr)
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "ping database").Wrap(err)
	}
	return pool, nil
}

// ReadinessCheck reports whether pool currently answers a ping within timeout.
func ReadinessCheck(pool *pgxpool.Pool, timeout time.Duration) func() bool {
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return pool.Ping(ctx) == nil
	}
}

// WriteError classifies a failed write. Unique and foreign key violations
// become resource.ErrConstraintViolation without naming the constraint;
// anything else is wrapped as an opaque write failure.
func WriteError(err error, kind, operation string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation, pgerrcode.ForeignKeyViolation:
			return oops.Code("STORE_CONSTRAINT_VIOLATION").
				With("kind", kind).
				With("operation", operation).
				With("sqlstate", pgErr.Code).
				Wrap(errors.Join(resource.ErrConstraintViolation, err))
		}
	}
	return oops.Code("STORE_WRITE_FAILED").
		With("kind", kind).
		With("operation", operation).
		Wrap(err)
}
