// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/samber/oops"

	"github.com/inkpost/inkpost/internal/resource"
)

// MemoryCodec describes how a MemoryStore builds, updates and indexes
// records of one resource kind.
type MemoryCodec[T any, F any] struct {
	// Kind names the resource in error context, e.g. "account".
	Kind string

	// New builds a fresh record from fields with the given id and creation time.
	New func(id int64, fields F, now time.Time) T

	// Apply overwrites the mutable fields of rec and refreshes its update time.
	// Server-managed fields not covered by F must be left untouched.
	Apply func(rec *T, fields F, now time.Time)

	// ID returns the record id.
	ID func(rec *T) int64

	// Key returns the record's unique lookup key. Create and Update reject
	// a record whose key is held by another record.
	Key func(rec *T) string

	// Clone copies rec, including anything it points to. Optional; the
	// default is a shallow copy.
	Clone func(rec *T) T
}

// MemoryStore is a process-local resource.Store backed by a map.
// A single mutex guards the map and the id counter, and every operation
// holds it for its full duration, so effects are totally ordered.
type MemoryStore[T any, F any] struct {
	mu      sync.Mutex
	records map[int64]*T
	counter int64

	codec MemoryCodec[T, F]
	now   func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	now func() time.Time
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		o.now = now
	}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore[T any, F any](codec MemoryCodec[T, F], opts ...MemoryOption) *MemoryStore[T, F] {
	o := memoryOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryStore[T, F]{
		records: make(map[int64]*T),
		codec:   codec,
		now:     o.now,
	}
}

var _ resource.Store[struct{}, struct{}] = (*MemoryStore[struct{}, struct{}])(nil)

// Operations ignore ctx once called: an aborted request never leaves the
// map half mutated.

// List returns copies of all records ordered by id.
func (s *MemoryStore[T, F]) List(_ context.Context) ([]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*T, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, s.clone(rec))
	}
	slices.SortFunc(out, func(a, b *T) int {
		return cmp.Compare(s.codec.ID(a), s.codec.ID(b))
	})
	return out, nil
}

// GetByID returns a copy of the record with the given id.
func (s *MemoryStore[T, F]) GetByID(_ context.Context, id int64) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, s.notFound("id", id)
	}
	return s.clone(rec), nil
}

// GetByKey scans for the record whose unique key equals key.
func (s *MemoryStore[T, F]) GetByKey(_ context.Context, key string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if s.codec.Key(rec) == key {
			return s.clone(rec), nil
		}
	}
	return nil, s.notFound("key", key)
}

// Create allocates the next id and inserts a new record. A rejected create
// does not consume an id.
func (s *MemoryStore[T, F]) Create(_ context.Context, fields F) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.codec.New(s.counter+1, fields, s.now())
	if err := s.checkKeyFree(&rec, 0); err != nil {
		return nil, err
	}
	s.counter++
	s.records[s.counter] = &rec
	return s.clone(&rec), nil
}

// Update replaces the record's mutable fields with fields.
func (s *MemoryStore[T, F]) Update(_ context.Context, id int64, fields F) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[id]
	if !ok {
		return nil, s.notFound("id", id)
	}

	updated := s.codec.cloneOf(existing)
	s.codec.Apply(&updated, fields, s.now())
	if err := s.checkKeyFree(&updated, id); err != nil {
		return nil, err
	}
	s.records[id] = &updated
	return s.clone(&updated), nil
}

// Delete removes the record with the given id.
func (s *MemoryStore[T, F]) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return s.notFound("id", id)
	}
	delete(s.records, id)
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore[T, F]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *MemoryStore[T, F]) notFound(field string, value any) error {
	return oops.Code("STORE_NOT_FOUND").
		With("kind", s.codec.Kind).
		With(field, value).
		Wrap(resource.ErrNotFound)
}

// checkKeyFree fails with resource.ErrConflict when a record other than
// self holds rec's key. Callers hold s.mu.
func (s *MemoryStore[T, F]) checkKeyFree(rec *T, self int64) error {
	key := s.codec.Key(rec)
	for id, other := range s.records {
		if id != self && s.codec.Key(other) == key {
			return oops.Code("STORE_KEY_TAKEN").
				With("kind", s.codec.Kind).
				With("key", key).
				Wrap(resource.ErrConflict)
		}
	}
	return nil
}

func (s *MemoryStore[T, F]) clone(rec *T) *T {
	c := s.codec.cloneOf(rec)
	return &c
}

func (c MemoryCodec[T, F]) cloneOf(rec *T) T {
	if c.Clone != nil {
		return c.Clone(rec)
	}
	return *rec
}
