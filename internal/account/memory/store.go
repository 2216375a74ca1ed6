// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package memory provides the in-process account store.
package memory

import (
	"time"

	"github.com/inkpost/inkpost/internal/account"
	"github.com/inkpost/inkpost/internal/store"
)

// Codec builds and updates account records for a store.MemoryStore.
var Codec = store.MemoryCodec[account.Account, account.Fields]{
	Kind: "account",
	New: func(id int64, f account.Fields, now time.Time) account.Account {
		return account.Account{
			ID:       id,
			Username: f.Username,
			Password: f.Password,
			Status:   f.Status,
			Created:  now,
			Updated:  now,
		}
	},
	Apply: func(a *account.Account, f account.Fields, now time.Time) {
		a.Username = f.Username
		a.Password = f.Password
		a.Status = f.Status
		a.Updated = now
	},
	ID:  func(a *account.Account) int64 { return a.ID },
	Key: func(a *account.Account) string { return a.Username },
	Clone: func(a *account.Account) account.Account {
		c := *a
		if a.LastLogin != nil {
			lastLogin := *a.LastLogin
			c.LastLogin = &lastLogin
		}
		return c
	},
}

// NewStore creates an empty in-memory account store.
func NewStore(opts ...store.MemoryOption) *store.MemoryStore[account.Account, account.Fields] {
	return store.NewMemoryStore(Codec, opts...)
}

var _ account.Store = (*store.MemoryStore[account.Account, account.Fields])(nil)
