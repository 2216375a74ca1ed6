// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the verified claims stored by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}

// BearerToken extracts the token from an Authorization header value.
// It returns false when the header is empty or lacks the Bearer prefix.
func BearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, BearerPrefix)
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// Middleware rejects requests that do not carry a valid bearer token.
// Verified claims are attached to the request context for downstream handlers.
func Middleware(verifier Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeUnauthorized(w)
				return
			}

			claims, err := verifier.Verify(token, time.Now())
			if err != nil {
				logger.DebugContext(r.Context(), "rejected bearer token",
					"path", r.URL.Path,
					"error", err)
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck // client may have gone away
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
