// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package post

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/samber/oops"

	"github.com/inkpost/inkpost/internal/resource"
)

// MaxSlugLength bounds slugs in bytes.
const MaxSlugLength = 128

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Request is the input of Service.Create and Service.Update. Updates
// replace the full post state.
type Request struct {
	AuthorID int64  `json:"author_id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	Status   string `json:"status"`
}

// Service orchestrates post operations over a Store.
type Service struct {
	store Store
}

// NewService creates a Service bound to store for its lifetime.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, oops.Code("POST_INVALID_CONFIG").Errorf("post store is required")
	}
	return &Service{store: store}, nil
}

// List returns all posts.
func (s *Service) List(ctx context.Context) ([]*Post, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return nil, storeFailed(err, "list")
	}
	return posts, nil
}

// Get returns the post with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*Post, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "get", "id", id)
	}
	return p, nil
}

// GetBySlug returns the post with the given slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	p, err := s.store.GetByKey(ctx, slug)
	if err != nil {
		return nil, translate(err, "get by slug", "slug", slug)
	}
	return p, nil
}

// Create validates req and stores a new post.
func (s *Service) Create(ctx context.Context, req Request) (*Post, error) {
	fields, err := validate(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, fields.Slug, 0); err != nil {
		return nil, err
	}

	p, err := s.store.Create(ctx, fields)
	if errors.Is(err, resource.ErrConflict) {
		return nil, slugTaken(fields.Slug)
	}
	if err != nil {
		return nil, translate(err, "create", "slug", fields.Slug)
	}
	return p, nil
}

// Update replaces every mutable field of the post. A missing id is
// reported as not found before the slug is checked.
func (s *Service) Update(ctx context.Context, id int64, req Request) (*Post, error) {
	fields, err := validate(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, translate(err, "update", "id", id)
	}
	if err := s.ensureSlugFree(ctx, fields.Slug, id); err != nil {
		return nil, err
	}

	p, err := s.store.Update(ctx, id, fields)
	if errors.Is(err, resource.ErrConflict) {
		return nil, slugTaken(fields.Slug)
	}
	if err != nil {
		return nil, translate(err, "update", "id", id)
	}
	return p, nil
}

// Delete removes the post with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translate(err, "delete", "id", id)
	}
	return nil
}

func validate(req Request) (Fields, error) {
	if req.AuthorID <= 0 {
		return Fields{}, oops.Code("POST_INVALID_AUTHOR").
			With("author_id", req.AuthorID).
			Wrapf(resource.ErrInvalidInput, "author id must be positive")
	}
	if strings.TrimSpace(req.Title) == "" {
		return Fields{}, oops.Code("POST_INVALID_TITLE").
			Wrapf(resource.ErrInvalidInput, "title cannot be empty")
	}
	if err := ValidateSlug(req.Slug); err != nil {
		return Fields{}, err
	}

	st := StatusDraft
	if req.Status != "" {
		parsed, err := ParseStatus(req.Status)
		if err != nil {
			return Fields{}, err
		}
		st = parsed
	}
	return Fields{
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Slug:     req.Slug,
		Content:  req.Content,
		Status:   st,
	}, nil
}

// ValidateSlug checks that slug is lowercase ASCII letters and digits
// separated by single dashes.
func ValidateSlug(slug string) error {
	if slug == "" {
		return oops.Code("POST_INVALID_SLUG").
			Wrapf(resource.ErrInvalidInput, "slug cannot be empty")
	}
	if len(slug) > MaxSlugLength {
		return oops.Code("POST_INVALID_SLUG").
			With("length", len(slug)).
			Wrapf(resource.ErrInvalidInput, "slug exceeds %d characters", MaxSlugLength)
	}
	if !slugPattern.MatchString(slug) {
		return oops.Code("POST_INVALID_SLUG").
			With("slug", slug).
			Wrapf(resource.ErrInvalidInput, "slug must be lowercase letters, digits and dashes")
	}
	return nil
}

func (s *Service) ensureSlugFree(ctx context.Context, slug string, self int64) error {
	existing, err := s.store.GetByKey(ctx, slug)
	switch {
	case errors.Is(err, resource.ErrNotFound):
		return nil
	case err != nil:
		return storeFailed(err, "check slug")
	case existing.ID != self:
		return slugTaken(slug)
	default:
		return nil
	}
}

func slugTaken(slug string) error {
	return oops.Code("POST_SLUG_TAKEN").
		With("slug", slug).
		Wrapf(resource.ErrConflict, "slug %q is already taken", slug)
}

func translate(err error, operation, key string, value any) error {
	switch {
	case errors.Is(err, resource.ErrNotFound):
		return oops.Code("POST_NOT_FOUND").
			With(key, value).
			Wrapf(resource.ErrNotFound, "post not found")
	case errors.Is(err, resource.ErrConstraintViolation):
		return oops.Code("POST_CONSTRAINT_VIOLATION").
			With("operation", operation).
			With(key, value).
			Wrap(err)
	default:
		return storeFailed(err, operation)
	}
}

func storeFailed(err error, operation string) error {
	return oops.Code("POST_STORE_FAILED").With("operation", operation).Wrap(err)
}
