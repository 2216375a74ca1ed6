// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package grpc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/inkpost/inkpost/internal/auth"
	inkpostv1 "github.com/inkpost/inkpost/pkg/proto/inkpost/v1"
)

// AuthorizationKey is the metadata key carrying the bearer token.
const AuthorizationKey = "authorization"

// publicMethods may be called without a token.
var publicMethods = map[string]bool{
	inkpostv1.SessionService_Login_FullMethodName: true,
	grpc_health_v1.Health_Check_FullMethodName:    true,
	grpc_health_v1.Health_Watch_FullMethodName:    true,
}

// AuthInterceptor verifies the bearer token of every non-public unary call
// and attaches the claims to the handler context.
func AuthInterceptor(verifier auth.Verifier, logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		token, ok := tokenFromMetadata(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}
		claims, err := verifier.Verify(token, time.Now())
		if err != nil {
			logger.DebugContext(ctx, "rejected bearer token",
				"method", info.FullMethod,
				"error", err)
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}
		return handler(auth.WithClaims(ctx, claims), req)
	}
}

// AuthStreamInterceptor applies the same check to streaming calls.
func AuthStreamInterceptor(verifier auth.Verifier) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if publicMethods[info.FullMethod] {
			return handler(srv, ss)
		}
		token, ok := tokenFromMetadata(ss.Context())
		if !ok {
			return status.Error(codes.Unauthenticated, "missing bearer token")
		}
		if _, err := verifier.Verify(token, time.Now()); err != nil {
			return status.Error(codes.Unauthenticated, "unauthorized")
		}
		return handler(srv, ss)
	}
}

func tokenFromMetadata(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	for _, v := range md.Get(AuthorizationKey) {
		if token, ok := auth.BearerToken(v); ok {
			return token, true
		}
	}
	return "", false
}

// CallObserver records finished calls.
type CallObserver interface {
	ObserveGRPC(method, code string)
}

// MetricsInterceptor reports every unary call's status code to observer.
func MetricsInterceptor(observer CallObserver) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		observer.ObserveGRPC(shortMethod(info.FullMethod), status.Code(err).String())
		return resp, err
	}
}

// shortMethod trims the leading slash of a full method name.
func shortMethod(full string) string {
	return strings.TrimPrefix(full, "/")
}
