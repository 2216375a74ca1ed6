// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/resource"
	"github.com/inkpost/inkpost/pkg/errutil"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, resource.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, resource.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, resource.ErrConflict), errors.Is(err, resource.ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials), auth.IsTokenError(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs server-side failures and writes the mapped response.
// Internal errors never reach the client verbatim.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusFor(err)
	body := ErrorResponse{Error: err.Error(), Code: errutil.Code(err)}

	switch status {
	case http.StatusInternalServerError:
		errutil.LogErrorContext(r.Context(), logger, "request failed", err)
		body = ErrorResponse{Error: "internal server error", Code: "INTERNAL"}
	case http.StatusUnauthorized:
		body.Error = auth.ErrInvalidCredentials.Error()
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // client may have gone away
	json.NewEncoder(w).Encode(v)
}

type dataResponse struct {
	Data any `json:"data"`
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, dataResponse{Data: v})
}
