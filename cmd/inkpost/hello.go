// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHelloCmd creates the hello subcommand.
func NewHelloCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Print the configuration file in use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := newLoader(cmd, nil).Load()
			if err != nil {
				return err
			}
			location := settings.ConfigInfo.Location
			if location == "" {
				location = "defaults and environment only"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "hello world! Using configuration from %s\n", location)
			return err
		},
	}
}
