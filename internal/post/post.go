// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package post provides the Post resource: its record type, the storage
// contract and the service that callers use.
package post

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/inkpost/inkpost/internal/resource"
)

// Status is the publication state of a post.
type Status int

// Post statuses. The numeric values are persisted.
const (
	StatusDraft     Status = 1
	StatusPublished Status = 2
)

// StatusFromInt converts a stored value. Unknown values map to StatusDraft.
func StatusFromInt(v int) Status {
	if Status(v) == StatusPublished {
		return StatusPublished
	}
	return StatusDraft
}

// ParseStatus converts a request value such as "Draft" or "published".
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(s) {
	case "draft":
		return StatusDraft, nil
	case "published":
		return StatusPublished, nil
	default:
		return 0, oops.Code("POST_INVALID_STATUS").With("status", s).
			Wrapf(resource.ErrInvalidInput, "unknown post status %q", s)
	}
}

func (s Status) String() string {
	if s == StatusPublished {
		return "Published"
	}
	return "Draft"
}

// MarshalJSON encodes the status by name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return oops.Code("POST_INVALID_STATUS").Wrap(err)
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Post is an authored piece of content addressed by a unique slug.
type Post struct {
	ID       int64     `json:"id"`
	AuthorID int64     `json:"author_id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Content  string    `json:"content"`
	Status   Status    `json:"status"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// Fields is the full mutable state of a post as handed to a Store.
type Fields struct {
	AuthorID int64
	Title    string
	Slug     string
	Content  string
	Status   Status
}

// Store persists posts. The unique key is the slug.
type Store = resource.Store[Post, Fields]
