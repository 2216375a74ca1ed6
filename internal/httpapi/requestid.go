// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package httpapi

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// newRequestID returns a time-ordered ULID string.
func newRequestID() string {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// acceptRequestID keeps a caller-supplied id only if it is a valid ULID.
func acceptRequestID(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	id, err := ulid.ParseStrict(header)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
