// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/auth/mocks"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"", "", false},
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc", "", false},
		{"Basic dXNlcjpwdw==", "", false},
		{"Bearer ", "", false},
		{"abc.def.ghi", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := auth.BearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestMiddleware(t *testing.T) {
	tokens := newTokenService(t, "middleware-secret", time.Hour)
	valid, err := tokens.Issue("alice", time.Now())
	require.NoError(t, err)
	expired, err := tokens.Issue("alice", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	foreign, err := newTokenService(t, "other-secret", time.Hour).Issue("alice", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + valid, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"foreign secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := auth.Middleware(tokens, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				claims, ok := auth.ClaimsFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "alice", claims.Subject)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called, "protected handler reached only when authorized")
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "unauthorized", body["error"])
			}
		})
	}
}

func TestMiddleware_MissingTokenSkipsVerifier(t *testing.T) {
	verifier := mocks.NewMockVerifier(t)
	handler := auth.Middleware(verifier, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestMiddleware_VerifiesWithWallClock(t *testing.T) {
	verifier := mocks.NewMockVerifier(t)
	before := time.Now()
	verifier.On("Verify", "tok", mock.MatchedBy(func(now time.Time) bool {
		return !now.Before(before) && now.Sub(before) < time.Minute
	})).Return(&auth.Claims{Subject: "bob"}, nil)

	var subject string
	handler := auth.Middleware(verifier, nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		claims, _ := auth.ClaimsFromContext(r.Context())
		subject = claims.Subject
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "bob", subject)
}

func TestClaimsFromContext_Empty(t *testing.T) {
	claims, ok := auth.ClaimsFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
	assert.Nil(t, claims)
}
