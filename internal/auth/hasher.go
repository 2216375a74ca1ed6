// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
)

// Default argon2id cost parameters (RFC 9106 second recommendation).
const (
	argon2Time    = 2         // iterations
	argon2Memory  = 19 * 1024 // 19 MiB
	argon2Threads = 1         // parallelism
	argon2SaltLen = 16        // salt length in bytes
	argon2KeyLen  = 32        // output length in bytes
)

// Credential verification failures.
var (
	// ErrMalformedCredential is returned when a stored credential cannot be parsed.
	ErrMalformedCredential = errors.New("malformed credential")

	// ErrCredentialMismatch is returned when a password does not match its credential.
	ErrCredentialMismatch = errors.New("credential mismatch")
)

// PasswordHasher turns passwords into credentials and checks them.
type PasswordHasher interface {
	// Hash produces an encoded credential for the password.
	Hash(password string) (string, error)

	// Verify returns nil when password matches credential,
	// ErrCredentialMismatch when it does not, and ErrMalformedCredential
	// when the credential cannot be parsed.
	Verify(password, credential string) error
}

// Argon2idHasher implements PasswordHasher using argon2id and PHC string encoding.
type Argon2idHasher struct{}

// NewArgon2idHasher creates a new Argon2idHasher.
func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{}
}

// Hash produces an argon2id credential with a fresh random salt.
func (h *Argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code("AUTH_ENCODING_FAILED").With("operation", "generate salt").Wrap(err)
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// $argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks password against an encoded credential.
// Parameters are taken from the credential, so credentials produced with
// other cost settings still verify.
func (h *Argon2idHasher) Verify(password, credential string) error {
	p, err := decodeCredential(credential)
	if err != nil {
		return err
	}

	computed := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.threads, uint32(len(p.key))) //nolint:gosec // length bounded in decodeCredential

	if subtle.ConstantTimeCompare(computed, p.key) != 1 {
		return oops.Code("AUTH_CREDENTIAL_MISMATCH").Wrap(ErrCredentialMismatch)
	}
	return nil
}

func malformed() oops.OopsErrorBuilder {
	return oops.Code("AUTH_MALFORMED_CREDENTIAL")
}

type credentialParams struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func decodeCredential(credential string) (*credentialParams, error) {
	parts := strings.Split(credential, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, malformed().With("reason", "invalid format").Wrap(ErrMalformedCredential)
	}

	if parts[1] != "argon2id" {
		return nil, malformed().With("reason", "unsupported algorithm").With("algorithm", parts[1]).Wrap(ErrMalformedCredential)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, malformed().With("reason", "invalid version").Wrap(ErrMalformedCredential)
	}
	if version != argon2.Version {
		return nil, malformed().With("reason", "unsupported version").With("version", version).Wrap(ErrMalformedCredential)
	}

	var memory, iterations, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return nil, malformed().With("reason", "invalid parameters").Wrap(ErrMalformedCredential)
	}
	if threads == 0 || threads > 255 {
		return nil, malformed().With("reason", "threads out of range").With("threads", threads).Wrap(ErrMalformedCredential)
	}
	if iterations == 0 {
		return nil, malformed().With("reason", "iterations out of range").Wrap(ErrMalformedCredential)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, malformed().With("reason", "invalid salt encoding").Wrap(ErrMalformedCredential)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, malformed().With("reason", "invalid hash encoding").Wrap(ErrMalformedCredential)
	}
	if len(key) == 0 || len(key) > 1<<10 {
		return nil, malformed().With("reason", "hash length out of range").With("length", len(key)).Wrap(ErrMalformedCredential)
	}

	return &credentialParams{
		memory:  memory,
		time:    iterations,
		threads: uint8(threads),
		salt:    salt,
		key:     key,
	}, nil
}
