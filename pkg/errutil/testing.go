// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package errutil

import (
	"errors"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireOops fails the test unless err carries oops metadata.
func requireOops(t *testing.T, err error) oops.OopsError {
	t.Helper()
	require.Error(t, err)
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T: %v", err, err)
	return oopsErr
}

// AssertErrorCode asserts that err is an oops error with the given code.
func AssertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	assert.Equal(t, code, requireOops(t, err).Code())
}

// AssertErrorContext asserts that err carries key=value in its oops context.
func AssertErrorContext(t *testing.T, err error, key string, value any) {
	t.Helper()
	ctx := requireOops(t, err).Context()
	if assert.Contains(t, ctx, key) {
		assert.Equal(t, value, ctx[key])
	}
}

// AssertOutcome asserts that err classifies as kind under errors.Is and
// carries code. Service and store failures all take this shape, e.g.
// resource.ErrConflict with ACCOUNT_USERNAME_TAKEN.
func AssertOutcome(t *testing.T, err error, kind error, code string) {
	t.Helper()
	assert.True(t, errors.Is(err, kind), "expected %v in chain of %v", kind, err)
	AssertErrorCode(t, err, code)
}
