// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/post"
	"github.com/inkpost/inkpost/internal/resource"
	"github.com/inkpost/inkpost/pkg/errutil"
)

var columns = []string{"id", "author_id", "title", "slug", "content", "status", "created", "updated"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		mock.Close()
	})
	return mock
}

func TestStore_GetBySlug(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

	mock := newMock(t)
	mock.ExpectQuery(`SELECT .+ FROM posts WHERE slug = \$1`).
		WithArgs("hello-world").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(5), int64(1), "Hello", "hello-world", "body", 2, now, now))
	mock.ExpectQuery(`SELECT .+ FROM posts WHERE slug = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	s := NewStore(mock)
	got, err := s.GetByKey(context.Background(), "hello-world")
	require.NoError(t, err)
	assert.Equal(t, &post.Post{
		ID:       5,
		AuthorID: 1,
		Title:    "Hello",
		Slug:     "hello-world",
		Content:  "body",
		Status:   post.StatusPublished,
		Created:  now,
		Updated:  now,
	}, got)

	_, err = s.GetByKey(context.Background(), "missing")
	require.ErrorIs(t, err, resource.ErrNotFound)
	errutil.AssertErrorCode(t, err, "POST_NOT_FOUND")
	errutil.AssertErrorContext(t, err, "slug", "missing")
}

func TestStore_GetByIDDriverError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT .+ FROM posts WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection refused"))

	_, err := NewStore(mock).GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, resource.ErrNotFound)
	errutil.AssertErrorCode(t, err, "POST_GET_FAILED")
}

func TestStore_List(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM posts ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(1), int64(1), "A", "a", "", 1, now, now).
			AddRow(int64(2), int64(1), "B", "b", "", 7, now, now))

	got, err := NewStore(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, post.StatusDraft, got[1].Status, "unknown status maps to Draft")
}

func TestStore_Create(t *testing.T) {
	now := time.Now().UTC()
	fields := post.Fields{AuthorID: 1, Title: "Hello", Slug: "hello", Content: "body", Status: post.StatusDraft}

	t.Run("inserts then re-reads", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO posts`).
			WithArgs(int64(1), "Hello", "hello", "body", 1).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))
		mock.ExpectQuery(`SELECT .+ FROM posts WHERE id = \$1`).
			WithArgs(int64(9)).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(9), int64(1), "Hello", "hello", "body", 1, now, now))

		got, err := NewStore(mock).Create(context.Background(), fields)
		require.NoError(t, err)
		assert.Equal(t, int64(9), got.ID)
	})

	t.Run("missing author is a constraint violation", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO posts`).
			WithArgs(int64(1), "Hello", "hello", "body", 1).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "posts_author_id_fkey"})

		_, err := NewStore(mock).Create(context.Background(), fields)
		require.ErrorIs(t, err, resource.ErrConstraintViolation)
		errutil.AssertErrorCode(t, err, "STORE_CONSTRAINT_VIOLATION")
	})
}

func TestStore_Update(t *testing.T) {
	now := time.Now().UTC()
	fields := post.Fields{AuthorID: 2, Title: "New", Slug: "new", Content: "c", Status: post.StatusPublished}

	t.Run("updates existing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM posts WHERE id = \$1`).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(3), int64(1), "Old", "old", "", 1, now, now))
		mock.ExpectQuery(`UPDATE posts SET`).
			WithArgs(int64(3), int64(2), "New", "new", "c", 2).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(3), int64(2), "New", "new", "c", 2, now, now.Add(time.Second)))

		got, err := NewStore(mock).Update(context.Background(), 3, fields)
		require.NoError(t, err)
		assert.Equal(t, "new", got.Slug)
		assert.Equal(t, post.StatusPublished, got.Status)
		assert.Equal(t, now, got.Created)
	})

	t.Run("missing id", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM posts WHERE id = \$1`).
			WithArgs(int64(9999)).
			WillReturnError(pgx.ErrNoRows)

		_, err := NewStore(mock).Update(context.Background(), 9999, fields)
		require.ErrorIs(t, err, resource.ErrNotFound)
	})
}

func TestStore_Delete(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	s := NewStore(mock)
	require.NoError(t, s.Delete(context.Background(), 4))

	err := s.Delete(context.Background(), 4)
	require.ErrorIs(t, err, resource.ErrNotFound)
	errutil.AssertErrorCode(t, err, "POST_NOT_FOUND")
}
