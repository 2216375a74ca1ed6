// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package postgres provides the PostgreSQL account store.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/inkpost/inkpost/internal/account"
	"github.com/inkpost/inkpost/internal/resource"
	"github.com/inkpost/inkpost/internal/store"
)

const accountColumns = `id, username, password, status, created, updated, last_login`

// Store implements account.Store using PostgreSQL.
type Store struct {
	pool store.Querier
}

// NewStore creates a new Store.
func NewStore(pool store.Querier) *Store {
	return &Store{pool: pool}
}

var _ account.Store = (*Store)(nil)

// List returns all accounts ordered by id.
func (s *Store) List(ctx context.Context) ([]*account.Account, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, oops.Code("ACCOUNT_LIST_FAILED").With("operation", "list accounts").Wrap(err)
	}
	defer rows.Close()

	accounts := make([]*account.Account, 0)
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, oops.Code("ACCOUNT_LIST_FAILED").With("operation", "scan account row").Wrap(err)
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ACCOUNT_LIST_FAILED").With("operation", "iterate accounts").Wrap(err)
	}
	return accounts, nil
}

// GetByID retrieves an account by id.
func (s *Store) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	acct, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id).
			Wrap(errors.Join(resource.ErrNotFound, err))
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_FAILED").
			With("operation", "get account by id").
			With("id", id).
			Wrap(err)
	}
	return acct, nil
}

// GetByKey retrieves an account by username (case-sensitive).
func (s *Store) GetByKey(ctx context.Context, username string) (*account.Account, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)

	acct, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("username", username).
			Wrap(errors.Join(resource.ErrNotFound, err))
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_FAILED").
			With("operation", "get account by username").
			With("username", username).
			Wrap(err)
	}
	return acct, nil
}

// Create inserts a new account and returns the stored row.
func (s *Store) Create(ctx context.Context, fields account.Fields) (*account.Account, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO accounts (username, password, status, created, updated, last_login)
		VALUES ($1, $2, $3, NOW(), NOW(), NULL)
		RETURNING id
	`, fields.Username, fields.Password, int(fields.Status)).Scan(&id)
	if err != nil {
		return nil, store.WriteError(err, "account", "create")
	}
	return s.GetByID(ctx, id)
}

// Update replaces username, credential and status. last_login is untouched.
// The existence check and the update are separate statements; a row
// deleted in between still yields NotFound.
func (s *Store) Update(ctx context.Context, id int64, fields account.Fields) (*account.Account, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE accounts SET
			username = $2,
			password = $3,
			status = $4,
			updated = NOW()
		WHERE id = $1
		RETURNING `+accountColumns,
		id, fields.Username, fields.Password, int(fields.Status))

	acct, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id).
			Wrap(errors.Join(resource.ErrNotFound, err))
	}
	if err != nil {
		return nil, store.WriteError(err, "account", "update")
	}
	return acct, nil
}

// Delete removes an account.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return store.WriteError(err, "account", "delete")
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id).
			Wrap(resource.ErrNotFound)
	}
	return nil
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	var (
		acct      account.Account
		status    int
		lastLogin *time.Time
	)
	if err := row.Scan(
		&acct.ID,
		&acct.Username,
		&acct.Password,
		&status,
		&acct.Created,
		&acct.Updated,
		&lastLogin,
	); err != nil {
		return nil, err //nolint:wrapcheck // callers classify and wrap
	}
	acct.Status = account.StatusFromInt(status)
	acct.LastLogin = lastLogin
	return &acct, nil
}
