// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Command inkpost runs the inkpost API server and its command-line clients.
package main

import (
	"fmt"
	"os"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit status.
// Cobra has already printed the error by the time Execute returns.
func run(args []string) int {
	cmd := NewRootCmd()
	cmd.Version = buildVersion()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func buildVersion() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}
