// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/httpapi"
)

const (
	defaultServerURL = "http://localhost:8080"
	clientTimeout    = 10 * time.Second
)

type loginOptions struct {
	server   string
	username string
	password string
}

// NewLoginCmd creates the login subcommand.
func NewLoginCmd() *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a session token",
		Long: `Exchange a username and password for a session token over the HTTP API.
The password is prompted for when --password is not given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.server, "server", defaultServerURL, "base URL of the HTTP API")
	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "account username")
	cmd.Flags().StringVar(&opts.password, "password", "", "account password (prompted when empty)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func runLogin(cmd *cobra.Command, opts *loginOptions) error {
	password := opts.password
	if password == "" {
		var err error
		password, err = readPassword(cmd)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), clientTimeout)
	defer cancel()

	result, err := postLogin(ctx, opts.server, opts.username, password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Token)
	return err
}

// readPassword prompts without echo on a terminal and reads one line
// otherwise.
func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int
		cmd.PrintErr("Password: ")
		raw, err := term.ReadPassword(int(f.Fd())) //nolint:gosec // fd fits in int
		cmd.PrintErrln()
		if err != nil {
			return "", oops.Code("LOGIN_PROMPT_FAILED").Wrap(err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", oops.Code("LOGIN_PROMPT_FAILED").Wrap(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func postLogin(ctx context.Context, server, username, password string) (*auth.LoginResult, error) {
	body, err := json.Marshal(httpapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, oops.Code("LOGIN_ENCODE_FAILED").Wrap(err)
	}

	endpoint := strings.TrimRight(server, "/") + "/v1/login"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, oops.Code("LOGIN_REQUEST_FAILED").With("url", endpoint).Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, oops.Code("LOGIN_REQUEST_FAILED").With("url", endpoint).Wrap(err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		var apiErr httpapi.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, oops.Code("LOGIN_REJECTED").
			With("status", resp.StatusCode).
			With("code", apiErr.Code).
			Errorf("login failed: %s", apiErr.Error)
	}

	var result auth.LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, oops.Code("LOGIN_DECODE_FAILED").Wrap(err)
	}
	return &result, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
