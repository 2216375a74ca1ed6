// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package account

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/oops"

	"github.com/inkpost/inkpost/internal/resource"
)

// MaxUsernameLength bounds usernames in runes.
const MaxUsernameLength = 64

// Hasher encodes plaintext passwords into credentials.
type Hasher interface {
	Hash(password string) (string, error)
}

// CreateRequest is the input of Service.Create.
type CreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Status   string `json:"status"`
}

// UpdateRequest is the input of Service.Update. Every field is required;
// updates replace the full account state.
type UpdateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Status   string `json:"status"`
}

// Service orchestrates account operations over a Store.
type Service struct {
	store  Store
	hasher Hasher
}

// NewService creates a Service bound to store for its lifetime.
func NewService(store Store, hasher Hasher) (*Service, error) {
	if store == nil {
		return nil, oops.Code("ACCOUNT_INVALID_CONFIG").Errorf("account store is required")
	}
	if hasher == nil {
		return nil, oops.Code("ACCOUNT_INVALID_CONFIG").Errorf("password hasher is required")
	}
	return &Service{store: store, hasher: hasher}, nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]*Account, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		return nil, storeFailed(err, "list")
	}
	return accounts, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*Account, error) {
	acct, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "get", "id", id)
	}
	return acct, nil
}

// GetByUsername returns the account with the given username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*Account, error) {
	acct, err := s.store.GetByKey(ctx, username)
	if err != nil {
		return nil, translate(err, "get by username", "username", username)
	}
	return acct, nil
}

// Create validates req, hashes the password and stores a new account.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Account, error) {
	fields, err := validate(req.Username, req.Password, req.Status)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, fields.Username, 0); err != nil {
		return nil, err
	}
	if fields.Password, err = s.hash(fields.Username, req.Password); err != nil {
		return nil, err
	}

	acct, err := s.store.Create(ctx, fields)
	if errors.Is(err, resource.ErrConflict) {
		return nil, usernameTaken(fields.Username)
	}
	if err != nil {
		return nil, translate(err, "create", "username", fields.Username)
	}
	return acct, nil
}

// Update replaces the account's username, credential and status.
// The last-login time is preserved. A missing id is reported as not found
// before any uniqueness check or hashing.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Account, error) {
	fields, err := validate(req.Username, req.Password, req.Status)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, translate(err, "update", "id", id)
	}
	if err := s.ensureUsernameFree(ctx, fields.Username, id); err != nil {
		return nil, err
	}
	if fields.Password, err = s.hash(fields.Username, req.Password); err != nil {
		return nil, err
	}

	acct, err := s.store.Update(ctx, id, fields)
	if errors.Is(err, resource.ErrConflict) {
		return nil, usernameTaken(fields.Username)
	}
	if err != nil {
		return nil, translate(err, "update", "id", id)
	}
	return acct, nil
}

// Delete removes the account with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translate(err, "delete", "id", id)
	}
	return nil
}

// validate checks the request shape and converts the status. The returned
// Fields has no credential yet.
func validate(username, password, status string) (Fields, error) {
	if err := ValidateUsername(username); err != nil {
		return Fields{}, err
	}
	if password == "" {
		return Fields{}, oops.Code("ACCOUNT_INVALID_PASSWORD").
			Wrapf(resource.ErrInvalidInput, "password cannot be empty")
	}

	st := StatusActive
	if status != "" {
		parsed, err := ParseStatus(status)
		if err != nil {
			return Fields{}, err
		}
		st = parsed
	}
	return Fields{Username: username, Status: st}, nil
}

// hash runs before the store call that persists the credential, so no
// store lock is held while it computes.
func (s *Service) hash(username, password string) (string, error) {
	credential, err := s.hasher.Hash(password)
	if err != nil {
		return "", oops.Code("ACCOUNT_HASH_FAILED").With("username", username).Wrap(err)
	}
	return credential, nil
}

// ensureUsernameFree fails with resource.ErrConflict when another account
// (any id other than self) already holds username. It saves a hash on the
// common path; the store still rejects a duplicate that races past it.
func (s *Service) ensureUsernameFree(ctx context.Context, username string, self int64) error {
	existing, err := s.store.GetByKey(ctx, username)
	switch {
	case errors.Is(err, resource.ErrNotFound):
		return nil
	case err != nil:
		return storeFailed(err, "check username")
	case existing.ID != self:
		return usernameTaken(username)
	default:
		return nil
	}
}

func usernameTaken(username string) error {
	return oops.Code("ACCOUNT_USERNAME_TAKEN").
		With("username", username).
		Wrapf(resource.ErrConflict, "username %q is already taken", username)
}

// ValidateUsername checks that username is non-empty, bounded and free of
// whitespace and control characters.
func ValidateUsername(username string) error {
	if username == "" {
		return oops.Code("ACCOUNT_INVALID_USERNAME").
			Wrapf(resource.ErrInvalidInput, "username cannot be empty")
	}
	if !utf8.ValidString(username) {
		return oops.Code("ACCOUNT_INVALID_USERNAME").
			Wrapf(resource.ErrInvalidInput, "username must be valid UTF-8")
	}
	if n := utf8.RuneCountInString(username); n > MaxUsernameLength {
		return oops.Code("ACCOUNT_INVALID_USERNAME").
			With("length", n).
			Wrapf(resource.ErrInvalidInput, "username exceeds %d characters", MaxUsernameLength)
	}
	if strings.IndexFunc(username, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return oops.Code("ACCOUNT_INVALID_USERNAME").
			Wrapf(resource.ErrInvalidInput, "username cannot contain whitespace")
	}
	return nil
}

// translate maps store errors to service outcomes. A NotFound is replaced by
// a fresh ACCOUNT_NOT_FOUND error carrying the lookup key.
func translate(err error, operation, key string, value any) error {
	switch {
	case errors.Is(err, resource.ErrNotFound):
		return oops.Code("ACCOUNT_NOT_FOUND").
			With(key, value).
			Wrapf(resource.ErrNotFound, "account not found")
	case errors.Is(err, resource.ErrConstraintViolation):
		return oops.Code("ACCOUNT_CONSTRAINT_VIOLATION").
			With("operation", operation).
			With(key, value).
			Wrap(err)
	default:
		return storeFailed(err, operation)
	}
}

func storeFailed(err error, operation string) error {
	return oops.Code("ACCOUNT_STORE_FAILED").With("operation", operation).Wrap(err)
}
