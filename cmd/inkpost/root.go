// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/inkpost/inkpost/internal/config"
)

// NewRootCmd creates the root command for the inkpost CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inkpost",
		Short: "Inkpost - accounts, posts and session tokens",
		Long: `Inkpost serves account and post resources over HTTP and gRPC,
authenticating callers with argon2id credentials and signed session tokens.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "config file path (default: ./"+config.DefaultConfigFile+" if present)")

	cmd.AddCommand(NewServeCmd(nil))
	cmd.AddCommand(NewHelloCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewWhoAmICmd())

	return cmd
}

// newLoader builds a config loader for cmd. Only flags that mapper knows
// become configuration keys.
func newLoader(cmd *cobra.Command, mapper config.FlagMapper) *config.Loader {
	path, _ := cmd.Flags().GetString("config")
	loader := &config.Loader{Path: path}
	if mapper != nil {
		loader.Flags = cmd.Flags()
		loader.MapFlag = mapper
	}
	return loader
}

