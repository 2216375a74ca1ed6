// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/inkpost/inkpost/internal/account"
	"github.com/inkpost/inkpost/internal/resource"
)

// Login outcomes reported to an OutcomeRecorder.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeError              = "error"
)

// StatusSuccess is the fixed marker returned with every issued token.
const StatusSuccess = "success"

// AccountFinder looks up accounts by username.
type AccountFinder interface {
	GetByUsername(ctx context.Context, username string) (*account.Account, error)
}

// OutcomeRecorder observes login results.
type OutcomeRecorder interface {
	RecordLogin(outcome string)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

// LoginService exchanges a username and password for a session token.
type LoginService struct {
	accounts AccountFinder
	hasher   PasswordHasher
	issuer   Issuer
	recorder OutcomeRecorder
	logger   *slog.Logger
}

// LoginOption configures a LoginService.
type LoginOption func(*LoginService)

// WithLoginLogger sets the logger used for internal failures.
func WithLoginLogger(logger *slog.Logger) LoginOption {
	return func(s *LoginService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOutcomeRecorder reports every login outcome to r.
func WithOutcomeRecorder(r OutcomeRecorder) LoginOption {
	return func(s *LoginService) {
		s.recorder = r
	}
}

// NewLoginService creates a LoginService.
func NewLoginService(accounts AccountFinder, hasher PasswordHasher, issuer Issuer, opts ...LoginOption) (*LoginService, error) {
	if accounts == nil {
		return nil, oops.Code("AUTH_INVALID_CONFIG").Errorf("account finder is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_CONFIG").Errorf("password hasher is required")
	}
	if issuer == nil {
		return nil, oops.Code("AUTH_INVALID_CONFIG").Errorf("token issuer is required")
	}

	s := &LoginService{
		accounts: accounts,
		hasher:   hasher,
		issuer:   issuer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// dummyCredential is verified when the username does not exist so both
// failure paths cost one argon2id computation. It matches no password.
//
//nolint:gosec // G101: not a real credential
const dummyCredential = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Login authenticates username with password and issues a token at now.
// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
func (s *LoginService) Login(ctx context.Context, username, password string, now time.Time) (*LoginResult, error) {
	acct, lookupErr := s.accounts.GetByUsername(ctx, username)

	target := dummyCredential
	exists := false
	switch {
	case lookupErr == nil:
		target = acct.Password
		exists = true
	case errors.Is(lookupErr, resource.ErrNotFound):
	default:
		s.record(OutcomeError)
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get account by username").
			Wrap(lookupErr)
	}

	verifyErr := s.hasher.Verify(password, target)
	if !exists || verifyErr != nil {
		if exists && errors.Is(verifyErr, ErrMalformedCredential) {
			s.logger.WarnContext(ctx, "stored credential is malformed",
				"account_id", acct.ID,
				"error", verifyErr)
		}
		s.record(OutcomeInvalidCredentials)
		return nil, invalidCredentials()
	}

	token, err := s.issuer.Issue(acct.Username, now)
	if err != nil {
		s.record(OutcomeError)
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	s.record(OutcomeSuccess)
	return &LoginResult{Status: StatusSuccess, Token: token}, nil
}

func (s *LoginService) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordLogin(outcome)
	}
}

func invalidCredentials() error {
	return oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
}
