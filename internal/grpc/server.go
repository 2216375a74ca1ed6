// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package grpc provides the gRPC session API: server, interceptors and client.
package grpc

import (
	"log/slog"
	"net"

	"github.com/samber/oops"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/inkpost/inkpost/internal/auth"
	inkpostv1 "github.com/inkpost/inkpost/pkg/proto/inkpost/v1"
)

// ServerConfig holds the collaborators of the gRPC server.
type ServerConfig struct {
	Login    Authenticator
	Verifier auth.Verifier
	// Observer is optional.
	Observer CallObserver
	Logger   *slog.Logger
}

// Server hosts the session and health services.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	logger *slog.Logger
}

// NewServer creates a Server with authentication and metrics interceptors.
func NewServer(cfg ServerConfig, opts ...grpc.ServerOption) (*Server, error) {
	if cfg.Verifier == nil {
		return nil, oops.Code("GRPC_INVALID_CONFIG").Errorf("token verifier is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	session, err := NewSessionService(cfg.Login, logger)
	if err != nil {
		return nil, err
	}

	unary := []grpc.UnaryServerInterceptor{}
	if cfg.Observer != nil {
		unary = append(unary, MetricsInterceptor(cfg.Observer))
	}
	unary = append(unary, AuthInterceptor(cfg.Verifier, logger))

	opts = append(opts,
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(AuthStreamInterceptor(cfg.Verifier)),
	)
	gs := grpc.NewServer(opts...)

	inkpostv1.RegisterSessionServiceServer(gs, session)
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(gs, hs)

	return &Server{grpc: gs, health: hs, logger: logger}, nil
}

// Serve accepts connections on lis until the server stops.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("grpc server listening", "addr", lis.Addr().String())
	if err := s.grpc.Serve(lis); err != nil {
		return oops.Code("GRPC_SERVE_FAILED").With("addr", lis.Addr().String()).Wrap(err)
	}
	return nil
}

// GracefulStop marks the server not serving and waits for in-flight calls.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// Stop closes all connections immediately.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.Stop()
}
