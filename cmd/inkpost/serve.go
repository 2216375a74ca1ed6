// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inkpost/inkpost/internal/account"
	accountmem "github.com/inkpost/inkpost/internal/account/memory"
	accountpg "github.com/inkpost/inkpost/internal/account/postgres"
	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/config"
	inkgrpc "github.com/inkpost/inkpost/internal/grpc"
	"github.com/inkpost/inkpost/internal/httpapi"
	"github.com/inkpost/inkpost/internal/logging"
	"github.com/inkpost/inkpost/internal/observability"
	"github.com/inkpost/inkpost/internal/post"
	postmem "github.com/inkpost/inkpost/internal/post/memory"
	postpg "github.com/inkpost/inkpost/internal/post/postgres"
	"github.com/inkpost/inkpost/internal/store"
)

const (
	defaultPort      = 8080
	shutdownTimeout  = 5 * time.Second
	readinessTimeout = 2 * time.Second
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd(deps *ServeDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and gRPC APIs",
		Long: `Start the HTTP API, the gRPC session API and the metrics/health server.
Accounts and posts are kept in PostgreSQL when database.url is set and in
memory otherwise. Configuration is reloaded on file change and on SIGHUP.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeWithDeps(cmd.Context(), cmd, deps)
		},
	}

	cmd.Flags().IntP("port", "p", defaultPort, "HTTP listen port")
	cmd.Flags().String("grpc-addr", config.DefaultGRPCAddr, "gRPC listen address")
	cmd.Flags().String("metrics-addr", config.DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("log-format", config.DefaultLogFormat, "log format (json or text)")
	cmd.Flags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	return cmd
}

// serveFlagKey maps serve flags onto configuration keys.
func serveFlagKey(f *pflag.Flag, flags *pflag.FlagSet) (string, any) {
	switch f.Name {
	case "port":
		port, err := flags.GetInt("port")
		if err != nil {
			return "", nil
		}
		return "server.http_addr", fmt.Sprintf(":%d", port)
	case "grpc-addr":
		return "server.grpc_addr", f.Value.String()
	case "metrics-addr":
		return "server.metrics_addr", f.Value.String()
	case "log-format":
		return "logging.log_format", f.Value.String()
	case "log-level":
		return "logging.log_level", f.Value.String()
	default:
		return "", nil
	}
}

type stores struct {
	accounts account.Store
	posts    post.Store
	ready    observability.ReadinessChecker
	close    func()
}

func openStores(ctx context.Context, settings *config.Settings, deps *ServeDeps) (*stores, error) {
	if settings.Database.URL == "" {
		slog.Warn("database.url not set; accounts and posts are kept in memory")
		return &stores{
			accounts: accountmem.NewStore(),
			posts:    postmem.NewStore(),
			ready:    func() bool { return true },
			close:    func() {},
		}, nil
	}

	pool, err := deps.Connect(ctx, settings.Database.URL)
	if err != nil {
		return nil, err
	}
	slog.Info("connected to database")
	return &stores{
		accounts: accountpg.NewStore(pool),
		posts:    postpg.NewStore(pool),
		ready:    store.ReadinessCheck(pool, readinessTimeout),
		close:    pool.Close,
	}, nil
}

// runServeWithDeps starts every server with injectable dependencies.
// If deps is nil, default implementations are used.
func runServeWithDeps(ctx context.Context, cmd *cobra.Command, deps *ServeDeps) error {
	if deps == nil {
		deps = &ServeDeps{}
	}
	if deps.Connect == nil {
		deps.Connect = store.Connect
	}
	if deps.Listen == nil {
		deps.Listen = net.Listen
	}
	if deps.ObservabilityServerFactory == nil {
		deps.ObservabilityServerFactory = func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, readinessChecker)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	loader := newLoader(cmd, serveFlagKey)
	settings, err := loader.Load()
	if err != nil {
		return oops.Code("SERVE_CONFIG_FAILED").Wrap(err)
	}

	logger := logging.SetDefault("inkpost", version, settings.Logging.LogFormat, settings.Logging.LogLevel)
	logger.Info("starting inkpost",
		"config", settings.ConfigInfo.Location,
		"http_addr", settings.Server.HTTPAddr,
		"grpc_addr", settings.Server.GRPCAddr,
	)
	if settings.TokenSecret == config.DefaultTokenSecret {
		logger.Warn("token_secret is the built-in default; set it before exposing the server")
	}

	holder := config.NewHolder(settings)

	st, err := openStores(ctx, settings, deps)
	if err != nil {
		return oops.Code("SERVE_STORE_FAILED").Wrap(err)
	}
	defer st.close()

	obsServer := deps.ObservabilityServerFactory(settings.Server.MetricsAddr, st.ready)
	metrics := obsServer.Metrics()

	hasher := auth.NewArgon2idHasher()
	accounts, err := account.NewService(st.accounts, hasher)
	if err != nil {
		return err
	}
	posts, err := post.NewService(st.posts)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenService(holder)
	if err != nil {
		return err
	}
	login, err := auth.NewLoginService(accounts, hasher, tokens,
		auth.WithLoginLogger(logger),
		auth.WithOutcomeRecorder(metrics))
	if err != nil {
		return err
	}

	handler, err := httpapi.NewHandler(httpapi.Deps{
		Accounts:       accounts,
		Posts:          posts,
		Login:          login,
		Verifier:       tokens,
		ConfigLocation: func() string { return holder.Load().ConfigInfo.Location },
		Observer:       metrics,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	grpcServer, err := inkgrpc.NewServer(inkgrpc.ServerConfig{
		Login:    login,
		Verifier: tokens,
		Observer: metrics,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	httpListener, err := deps.Listen("tcp", settings.Server.HTTPAddr)
	if err != nil {
		return oops.Code("SERVE_LISTEN_FAILED").With("addr", settings.Server.HTTPAddr).Wrap(err)
	}
	grpcListener, err := deps.Listen("tcp", settings.Server.GRPCAddr)
	if err != nil {
		_ = httpListener.Close()
		return oops.Code("SERVE_LISTEN_FAILED").With("addr", settings.Server.GRPCAddr).Wrap(err)
	}

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if settings.Server.MetricsAddr != "" {
		obsErrChan, err := obsServer.Start()
		if err != nil {
			_ = httpListener.Close()
			_ = grpcListener.Close()
			return oops.Code("SERVE_OBSERVABILITY_FAILED").Wrap(err)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
		logger.Info("observability server started", "addr", obsServer.Addr())
	}

	reloader := config.NewReloader(loader, holder, logger)
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		if err := reloader.Watch(ctx); err != nil {
			logger.Warn("config watch stopped", "error", err)
		}
	}()

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		logger.Info("http server listening", "addr", httpListener.Addr().String())
		if serveErr := httpServer.Serve(httpListener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- oops.Code("HTTP_SERVE_FAILED").Wrap(serveErr)
		}
	}()
	go func() {
		if serveErr := grpcServer.Serve(grpcListener); serveErr != nil {
			errChan <- serveErr
		}
	}()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("inkpost started")

	var runErr error
	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig)
	case runErr = <-errChan:
		logger.Error("server failed, shutting down", "error", runErr)
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("error stopping http server", "error", err)
	}
	grpcServer.GracefulStop()
	if settings.Server.MetricsAddr != "" {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			logger.Warn("error stopping observability server", "error", err)
		}
	}
	<-watchDone

	logger.Info("shutdown complete")
	return runErr
}

// monitorServerErrors cancels ctx when a server reports an error.
// It exits when either an error is received, the channel is closed, or the context is cancelled.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
