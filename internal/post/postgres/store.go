// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package postgres provides the PostgreSQL post store.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/inkpost/inkpost/internal/post"
	"github.com/inkpost/inkpost/internal/resource"
	"github.com/inkpost/inkpost/internal/store"
)

const postColumns = `id, author_id, title, slug, content, status, created, updated`

// Store implements post.Store using PostgreSQL.
type Store struct {
	pool store.Querier
}

// NewStore creates a new Store.
func NewStore(pool store.Querier) *Store {
	return &Store{pool: pool}
}

var _ post.Store = (*Store)(nil)

// List returns all posts ordered by id.
func (s *Store) List(ctx context.Context) ([]*post.Post, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY id`)
	if err != nil {
		return nil, oops.Code("POST_LIST_FAILED").With("operation", "list posts").Wrap(err)
	}
	defer rows.Close()

	posts := make([]*post.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, oops.Code("POST_LIST_FAILED").With("operation", "scan post row").Wrap(err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("POST_LIST_FAILED").With("operation", "iterate posts").Wrap(err)
	}
	return posts, nil
}

// GetByID retrieves a post by id.
func (s *Store) GetByID(ctx context.Context, id int64) (*post.Post, error) {
	p, err := scanPost(s.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("POST_NOT_FOUND").
			With("id", id).
			Wrap(errors.Join(resource.ErrNotFound, err))
	}
	if err != nil {
		return nil, oops.Code("POST_GET_FAILED").
			With("operation", "get post by id").
			With("id", id).
			Wrap(err)
	}
	return p, nil
}

// GetByKey retrieves a post by slug.
func (s *Store) GetByKey(ctx context.Context, slug string) (*post.Post, error) {
	p, err := scanPost(s.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("POST_NOT_FOUND").
			With("slug", slug).
			Wrap(errors.Join(resource.ErrNotFound, err))
	}
	if err != nil {
		return nil, oops.Code("POST_GET_FAILED").
			With("operation", "get post by slug").
			With("slug", slug).
			Wrap(err)
	}
	return p, nil
}

// Create inserts a new post and returns the stored row.
func (s *Store) Create(ctx context.Context, fields post.Fields) (*post.Post, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO posts (author_id, title, slug, content, status, created, updated)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`, fields.AuthorID, fields.Title, fields.Slug, fields.Content, int(fields.Status)).Scan(&id)
	if err != nil {
		return nil, store.WriteError(err, "post", "create")
	}
	return s.GetByID(ctx, id)
}

// Update replaces every mutable column of an existing post.
func (s *Store) Update(ctx context.Context, id int64, fields post.Fields) (*post.Post, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE posts SET
			author_id = $2,
			title = $3,
			slug = $4,
			content = $5,
			status = $6,
			updated = NOW()
		WHERE id = $1
		RETURNING `+postColumns,
		id, fields.AuthorID, fields.Title, fields.Slug, fields.Content, int(fields.Status))

	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("POST_NOT_FOUND").
			With("id", id).
			Wrap(errors.Join(resource.ErrNotFound, err))
	}
	if err != nil {
		return nil, store.WriteError(err, "post", "update")
	}
	return p, nil
}

// Delete removes a post.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return store.WriteError(err, "post", "delete")
	}
	if result.RowsAffected() == 0 {
		return oops.Code("POST_NOT_FOUND").
			With("id", id).
			Wrap(resource.ErrNotFound)
	}
	return nil
}

func scanPost(row pgx.Row) (*post.Post, error) {
	var (
		p      post.Post
		status int
	)
	if err := row.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Title,
		&p.Slug,
		&p.Content,
		&status,
		&p.Created,
		&p.Updated,
	); err != nil {
		return nil, err //nolint:wrapcheck // callers classify and wrap
	}
	p.Status = post.StatusFromInt(status)
	return &p, nil
}
