// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package httpapi exposes login, account and post operations over HTTP.
//
// Routes live under /v1. Login, registration and hello are public; every
// other route requires a bearer token verified by auth.Middleware.
// Successful responses wrap their payload as {"data": ...}; failures are
// {"error": message, "code": code}.
package httpapi
