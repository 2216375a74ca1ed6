// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package config

import (
	"sync/atomic"

	"github.com/inkpost/inkpost/internal/auth"
)

// Holder publishes the current Settings snapshot. Snapshots are never
// mutated after Store; a reload replaces the pointer as a whole.
type Holder struct {
	current atomic.Pointer[Settings]
}

// NewHolder creates a Holder publishing initial.
func NewHolder(initial *Settings) *Holder {
	h := &Holder{}
	if initial == nil {
		initial = Defaults()
	}
	h.current.Store(initial)
	return h
}

// Load returns the current snapshot. Callers read it once per operation.
func (h *Holder) Load() *Settings {
	return h.current.Load()
}

// Store publishes s as the current snapshot.
func (h *Holder) Store(s *Settings) {
	h.current.Store(s)
}

// TokenConfig returns the secret and lifetime from a single snapshot.
func (h *Holder) TokenConfig() auth.TokenConfig {
	s := h.Load()
	return auth.TokenConfig{
		Secret:   []byte(s.TokenSecret),
		Lifetime: s.TokenLifetime(),
	}
}

var _ auth.TokenConfigSource = (*Holder)(nil)
