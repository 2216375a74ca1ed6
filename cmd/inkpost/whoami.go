// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/inkpost/inkpost/internal/config"
	inkgrpc "github.com/inkpost/inkpost/internal/grpc"
)

// TokenEnv supplies the whoami token when --token is absent.
const TokenEnv = "INKPOST_TOKEN"

type whoAmIOptions struct {
	addr  string
	token string
}

// NewWhoAmICmd creates the whoami subcommand.
func NewWhoAmICmd() *cobra.Command {
	opts := &whoAmIOptions{}

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the account a session token belongs to",
		Long:  `Ask the gRPC session API who holds the given token.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWhoAmI(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "grpc-addr", config.DefaultGRPCAddr, "gRPC server address")
	cmd.Flags().StringVar(&opts.token, "token", "", "session token (default: $"+TokenEnv+")")

	return cmd
}

func runWhoAmI(cmd *cobra.Command, opts *whoAmIOptions) error {
	token := opts.token
	if token == "" {
		token = os.Getenv(TokenEnv)
	}
	if token == "" {
		return oops.Code("WHOAMI_NO_TOKEN").Errorf("a token is required (--token or $%s)", TokenEnv)
	}

	client, err := inkgrpc.NewClient(inkgrpc.ClientConfig{Address: opts.addr})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmd.PrintErrf("warning: closing connection: %v\n", closeErr)
		}
	}()

	ctx, cancel := context.WithTimeout(commandContext(cmd), clientTimeout)
	defer cancel()

	me, err := client.WhoAmI(ctx, token)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (token expires %s)\n", me.GetSubject(), me.GetExpiresAt().AsTime().Format(time.RFC3339))
	return err
}
