// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package grpc

import (
	"context"
	"time"

	"github.com/samber/oops"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"

	inkpostv1 "github.com/inkpost/inkpost/pkg/proto/inkpost/v1"
)

// Client wraps a gRPC connection to the session service.
type Client struct {
	conn    *grpc.ClientConn
	session inkpostv1.SessionServiceClient
}

// ClientConfig holds configuration for the gRPC client.
type ClientConfig struct {
	// Address is the target gRPC server address (e.g., "localhost:9000")
	Address string

	// KeepaliveTime is how often to ping the server (default: 10s)
	KeepaliveTime time.Duration

	// KeepaliveTimeout is how long to wait for ping response (default: 5s)
	KeepaliveTimeout time.Duration

	// DialOptions are appended after the defaults.
	DialOptions []grpc.DialOption
}

// NewClient creates a Client. The connection is established lazily on the
// first call.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Address == "" {
		return nil, oops.Code("GRPC_CLIENT_INVALID_CONFIG").Errorf("address is required")
	}
	if cfg.KeepaliveTime == 0 {
		cfg.KeepaliveTime = 10 * time.Second
	}
	if cfg.KeepaliveTimeout == 0 {
		cfg.KeepaliveTimeout = 5 * time.Second
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.KeepaliveTime,
			Timeout:             cfg.KeepaliveTimeout,
			PermitWithoutStream: true,
		}),
	}
	opts = append(opts, cfg.DialOptions...)

	conn, err := grpc.NewClient(cfg.Address, opts...)
	if err != nil {
		return nil, oops.Code("GRPC_CLIENT_CONNECT_FAILED").With("address", cfg.Address).Wrap(err)
	}
	return &Client{conn: conn, session: inkpostv1.NewSessionServiceClient(conn)}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Close(); err != nil {
		return oops.Code("GRPC_CLIENT_CLOSE_FAILED").Wrap(err)
	}
	return nil
}

// Conn exposes the connection for other services on the same server.
func (c *Client) Conn() *grpc.ClientConn {
	return c.conn
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (*inkpostv1.LoginResponse, error) {
	resp, err := c.session.Login(ctx, &inkpostv1.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, oops.Code("GRPC_LOGIN_FAILED").Wrap(err)
	}
	return resp, nil
}

// WhoAmI describes the holder of token.
func (c *Client) WhoAmI(ctx context.Context, token string) (*inkpostv1.WhoAmIResponse, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, AuthorizationKey, "Bearer "+token)
	resp, err := c.session.WhoAmI(ctx, &inkpostv1.WhoAmIRequest{})
	if err != nil {
		return nil, oops.Code("GRPC_WHOAMI_FAILED").Wrap(err)
	}
	return resp, nil
}
