// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package httpapi

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/inkpost/inkpost/internal/logging"
)

// requestID assigns every request an id, echoes it in the response and
// makes it available to loggers through the context.
func (a *api) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := acceptRequestID(r.Header.Get(RequestIDHeader))
		if !ok {
			id = newRequestID()
		}
		w.Header().Set(RequestIDHeader, id)
		trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("request.id", id))
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}

func (a *api) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				a.logger.ErrorContext(r.Context(), "handler panic",
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()))
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "INTERNAL"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// instrument names the span after the route template, then logs and
// counts the finished request.
func (a *api) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeTemplate(r)
		span := trace.SpanFromContext(r.Context())
		span.SetName(r.Method + " " + route)

		m := httpsnoop.CaptureMetrics(next, w, r)

		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", m.Code),
		)
		if a.Observer != nil {
			a.Observer.ObserveHTTP(route, r.Method, m.Code, m.Duration)
		}
		a.logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration", m.Duration.Round(time.Microsecond).String())
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
