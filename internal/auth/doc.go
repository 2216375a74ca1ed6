// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package auth provides the credential, token and login primitives for Inkpost.
//
// # Credentials
//
// Passwords are stored as argon2id credentials in PHC string format.
// Argon2idHasher produces them and verifies passwords against them.
//
// # Tokens
//
// TokenService issues and verifies HS256 session tokens. The signing secret
// and lifetime are read from a TokenConfigSource on every call, so a
// configuration reload takes effect for the next request.
//
// # Login
//
// LoginService exchanges a username and password for a token. Unknown
// usernames and wrong passwords produce the same ErrInvalidCredentials.
//
// # Middleware
//
// Middleware rejects HTTP requests without a valid bearer token and stores
// the verified Claims in the request context.
package auth
