// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/pkg/errutil"
	inkpostv1 "github.com/inkpost/inkpost/pkg/proto/inkpost/v1"
)

// ServiceName is the fully qualified session service name, also used as
// its health check key.
const ServiceName = "inkpost.v1.SessionService"

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string, now time.Time) (*auth.LoginResult, error)
}

// SessionService implements the SessionService gRPC API over the login service.
type SessionService struct {
	inkpostv1.UnimplementedSessionServiceServer

	login  Authenticator
	logger *slog.Logger
	now    func() time.Time
}

// NewSessionService creates a SessionService.
func NewSessionService(login Authenticator, logger *slog.Logger) (*SessionService, error) {
	if login == nil {
		return nil, oops.Code("GRPC_INVALID_CONFIG").Errorf("login service is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{login: login, logger: logger, now: time.Now}, nil
}

// Login authenticates the caller and returns a session token.
func (s *SessionService) Login(ctx context.Context, req *inkpostv1.LoginRequest) (*inkpostv1.LoginResponse, error) {
	result, err := s.login.Login(ctx, req.GetUsername(), req.GetPassword(), s.now())
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, status.Error(codes.Unauthenticated, auth.ErrInvalidCredentials.Error())
		}
		errutil.LogErrorContext(ctx, s.logger, "grpc login failed", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &inkpostv1.LoginResponse{Status: result.Status, Token: result.Token}, nil
}

// WhoAmI returns the claims attached by the auth interceptor.
func (s *SessionService) WhoAmI(ctx context.Context, _ *inkpostv1.WhoAmIRequest) (*inkpostv1.WhoAmIResponse, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return &inkpostv1.WhoAmIResponse{
		Subject:   claims.Subject,
		IssuedAt:  timestamppb.New(time.Unix(claims.IssuedAt, 0)),
		ExpiresAt: timestamppb.New(time.Unix(claims.ExpiresAt, 0)),
	}, nil
}
