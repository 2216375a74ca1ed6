// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/account"
)

// startServe runs serve on loopback ports chosen by the kernel and returns
// the bound HTTP and gRPC addresses.
func startServe(t *testing.T) (httpAddr, grpcAddr string) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("INKPOST_DATABASE__URL", "")
	t.Setenv("INKPOST_TOKEN_SECRET", "serve-test-secret")

	bound := make(chan string, 2)
	deps := &ServeDeps{
		Connect: func(context.Context, string) (*pgxpool.Pool, error) {
			t.Error("memory mode must not connect to a database")
			return nil, nil
		},
		Listen: func(network, _ string) (net.Listener, error) {
			l, err := net.Listen(network, "127.0.0.1:0")
			if err == nil {
				bound <- l.Addr().String()
			}
			return l, err
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		cmd := NewServeCmd(deps)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--metrics-addr", "", "--log-level", "error"})
		done <- cmd.ExecuteContext(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Error("serve did not shut down")
		}
	})

	for _, addr := range []*string{&httpAddr, &grpcAddr} {
		select {
		case *addr = <-bound:
		case err := <-done:
			t.Fatalf("serve exited early: %v", err)
		case <-time.After(10 * time.Second):
			t.Fatal("serve did not bind its listeners")
		}
	}
	return httpAddr, grpcAddr
}

func waitForHTTP(t *testing.T, url string) {
	t.Helper()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:gosec,noctx // test-local URL
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)
}

func TestServe_EndToEnd(t *testing.T) {
	httpAddr, grpcAddr := startServe(t)
	base := "http://" + httpAddr
	waitForHTTP(t, base+"/v1/hello")

	body, err := json.Marshal(account.CreateRequest{Username: "alice", Password: "wonderland"})
	require.NoError(t, err)
	resp, err := http.Post(base+"/v1/accounts", "application/json", bytes.NewReader(body)) //nolint:noctx // test
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("login prints a token", func(t *testing.T) {
		out, err := execute(t, "login", "--server", base, "-u", "alice", "--password", "wonderland")
		require.NoError(t, err)
		token := strings.TrimSpace(out)
		require.Equal(t, 2, strings.Count(token, "."), "token is a compact JWT")

		t.Run("whoami resolves the token over grpc", func(t *testing.T) {
			out, err := execute(t, "whoami", "--grpc-addr", grpcAddr, "--token", token)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, "alice "), out)
		})
	})

	t.Run("login reads the password from stdin", func(t *testing.T) {
		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetIn(strings.NewReader("wonderland\n"))
		cmd.SetArgs([]string{"login", "--server", base, "-u", "alice"})
		require.NoError(t, cmd.Execute())
		assert.NotEmpty(t, strings.TrimSpace(out.String()))
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := execute(t, "login", "--server", base, "-u", "alice", "--password", "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid username or password")
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		resp, err := http.Get(base + "/v1/accounts") //nolint:noctx // test
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
