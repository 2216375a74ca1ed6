// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package account provides the Account resource: its record type, the
// storage contract and the service that callers use.
package account

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/inkpost/inkpost/internal/resource"
)

// Status is the lifecycle state of an account.
type Status int

// Account statuses. The numeric values are persisted.
const (
	StatusActive  Status = 1
	StatusBlocked Status = 2
)

// StatusFromInt converts a stored value. Unknown values map to StatusActive.
func StatusFromInt(v int) Status {
	if Status(v) == StatusBlocked {
		return StatusBlocked
	}
	return StatusActive
}

// ParseStatus converts a request value such as "Active" or "blocked".
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(s) {
	case "active":
		return StatusActive, nil
	case "blocked":
		return StatusBlocked, nil
	default:
		return 0, oops.Code("ACCOUNT_INVALID_STATUS").With("status", s).
			Wrapf(resource.ErrInvalidInput, "unknown account status %q", s)
	}
}

func (s Status) String() string {
	if s == StatusBlocked {
		return "Blocked"
	}
	return "Active"
}

// MarshalJSON encodes the status by name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return oops.Code("ACCOUNT_INVALID_STATUS").Wrap(err)
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Account is an identity record. Password holds the encoded credential,
// never the plaintext.
type Account struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Password  string     `json:"password"`
	Status    Status     `json:"status"`
	Created   time.Time  `json:"created"`
	Updated   time.Time  `json:"updated"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Fields is the full mutable state of an account as handed to a Store.
// Password is already an encoded credential.
type Fields struct {
	Username string
	Password string
	Status   Status
}

// Store persists accounts. The unique key is the username.
type Store = resource.Store[Account, Fields]
