// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/samber/oops"
)

// Defaults applied when configuration leaves token settings unset.
const (
	DefaultTokenSecret   = "secret"
	DefaultTokenLifetime = 3600 * time.Second
)

// signingMethod is fixed by the server; the token's alg header is never trusted.
var signingMethod = jwt.SigningMethodHS256

// Claims is the verified payload of a session token.
// Times are whole seconds since the Unix epoch.
type Claims struct {
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TokenConfig is one consistent view of the token settings.
type TokenConfig struct {
	Secret   []byte
	Lifetime time.Duration
}

// TokenConfigSource supplies the current token settings.
// Implementations must return a consistent snapshot on each call.
type TokenConfigSource interface {
	TokenConfig() TokenConfig
}

// TokenConfigFunc adapts a function to TokenConfigSource.
type TokenConfigFunc func() TokenConfig

// TokenConfig calls f.
func (f TokenConfigFunc) TokenConfig() TokenConfig {
	return f()
}

// StaticTokenConfig returns a source that always yields the same settings.
func StaticTokenConfig(secret string, lifetime time.Duration) TokenConfigSource {
	cfg := TokenConfig{Secret: []byte(secret), Lifetime: lifetime}
	return TokenConfigFunc(func() TokenConfig { return cfg })
}

// Issuer mints session tokens.
type Issuer interface {
	Issue(subject string, now time.Time) (string, error)
}

// Verifier validates session tokens.
type Verifier interface {
	Verify(token string, now time.Time) (*Claims, error)
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	source TokenConfigSource
}

// NewTokenService creates a TokenService reading settings from source on every call.
func NewTokenService(source TokenConfigSource) (*TokenService, error) {
	if source == nil {
		return nil, oops.Code("AUTH_INVALID_CONFIG").Errorf("token config source is required")
	}
	return &TokenService{source: source}, nil
}

func (s *TokenService) settings() ([]byte, time.Duration) {
	cfg := s.source.TokenConfig()
	secret := cfg.Secret
	if len(secret) == 0 {
		secret = []byte(DefaultTokenSecret)
	}
	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return secret, lifetime
}

// Issue signs a token for subject valid from now until now plus the
// configured lifetime.
func (s *TokenService) Issue(subject string, now time.Time) (string, error) {
	secret, lifetime := s.settings()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_SIGN_FAILED").With("subject", subject).Wrap(err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry at instant now.
// A token remains valid through the whole second named by its exp claim.
func (s *TokenService) Verify(token string, now time.Time) (*Claims, error) {
	secret, _ := s.settings()

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now.Truncate(time.Second) }),
		jwt.WithLeeway(time.Second),
		jwt.WithExpirationRequired(),
	)

	var registered jwt.RegisteredClaims
	_, err := parser.ParseWithClaims(token, &registered, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims := &Claims{
		Subject:   registered.Subject,
		ExpiresAt: registered.ExpiresAt.Unix(),
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Unix()
	}
	return claims, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return oops.Code("AUTH_TOKEN_MALFORMED").Wrap(errors.Join(ErrTokenMalformed, err))
	case errors.Is(err, jwt.ErrTokenExpired):
		return oops.Code("AUTH_TOKEN_EXPIRED").Wrap(errors.Join(ErrTokenExpired, err))
	default:
		return oops.Code("AUTH_TOKEN_INVALID_SIGNATURE").Wrap(errors.Join(ErrInvalidSignature, err))
	}
}
