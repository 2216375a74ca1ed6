// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package resource defines the storage contract shared by every resource kind.
package resource

import (
	"context"
	"errors"
)

// Sentinel errors. Backends and services wrap these with oops codes and
// context; callers classify with errors.Is.
var (
	// ErrNotFound is returned when a lookup by id or unique key misses.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique key is already held by another record.
	ErrConflict = errors.New("conflict")

	// ErrConstraintViolation is returned when the relational schema rejects a write.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrInvalidInput is returned when request fields fail shape validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Store is the persistence capability for one resource kind.
// T is the record type and F the caller-supplied field set used on create
// and update. Every update supplies the full target state.
type Store[T any, F any] interface {
	// List returns all records ordered by id.
	List(ctx context.Context) ([]*T, error)

	// GetByID returns the record with the given id or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*T, error)

	// GetByKey returns the record with the given unique key or ErrNotFound.
	GetByKey(ctx context.Context, key string) (*T, error)

	// Create assigns an id and timestamps and returns the stored record.
	Create(ctx context.Context, fields F) (*T, error)

	// Update replaces the mutable fields of an existing record.
	Update(ctx context.Context, id int64, fields F) (*T, error)

	// Delete removes the record permanently.
	Delete(ctx context.Context, id int64) error
}
