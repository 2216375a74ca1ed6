// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package auth

import "errors"

// Token verification failures. All of them are surfaced to callers as unauthorized.
var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenMalformed   = errors.New("malformed token")
	ErrTokenExpired     = errors.New("token expired")
)

// ErrInvalidCredentials is returned by login for both unknown usernames and
// wrong passwords.
var ErrInvalidCredentials = errors.New("invalid username or password")

// IsTokenError reports whether err is any token verification failure.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenExpired)
}
