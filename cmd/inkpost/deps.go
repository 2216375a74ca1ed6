// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package main

import (
	"context"
	"net"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpost/inkpost/internal/observability"
)

// ServeDeps contains injectable dependencies for the serve command.
// All fields with nil values will use their default implementations.
type ServeDeps struct {
	// Connect opens the PostgreSQL pool.
	// Default: store.Connect
	Connect func(ctx context.Context, url string) (*pgxpool.Pool, error)

	// Listen binds a network listener.
	// Default: net.Listen
	Listen func(network, address string) (net.Listener, error)

	// ObservabilityServerFactory creates an observability server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer
}

// ObservabilityServer interface wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Metrics() *observability.Metrics
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
}
