// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package memory provides the in-process post store.
package memory

import (
	"time"

	"github.com/inkpost/inkpost/internal/post"
	"github.com/inkpost/inkpost/internal/store"
)

// Codec builds and updates post records for a store.MemoryStore.
var Codec = store.MemoryCodec[post.Post, post.Fields]{
	Kind: "post",
	New: func(id int64, f post.Fields, now time.Time) post.Post {
		return post.Post{
			ID:       id,
			AuthorID: f.AuthorID,
			Title:    f.Title,
			Slug:     f.Slug,
			Content:  f.Content,
			Status:   f.Status,
			Created:  now,
			Updated:  now,
		}
	},
	Apply: func(p *post.Post, f post.Fields, now time.Time) {
		p.AuthorID = f.AuthorID
		p.Title = f.Title
		p.Slug = f.Slug
		p.Content = f.Content
		p.Status = f.Status
		p.Updated = now
	},
	ID:  func(p *post.Post) int64 { return p.ID },
	Key: func(p *post.Post) string { return p.Slug },
}

// NewStore creates an empty in-memory post store.
func NewStore(opts ...store.MemoryOption) *store.MemoryStore[post.Post, post.Fields] {
	return store.NewMemoryStore(Codec, opts...)
}

var _ post.Store = (*store.MemoryStore[post.Post, post.Fields])(nil)
