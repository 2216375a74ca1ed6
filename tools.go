// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

//go:build tools

// Package main records build-time tools so their versions live in go.mod.
package main

import (
	// Regenerates pkg/proto from api/proto (see buf.gen.yaml).
	_ "google.golang.org/protobuf/cmd/protoc-gen-go"

	// Suites under test/integration and internal/store.
	_ "github.com/onsi/ginkgo/v2"
	_ "github.com/onsi/gomega"

	// Assertions and mocks (internal/*/mocks).
	_ "github.com/stretchr/testify/assert"
	_ "github.com/stretchr/testify/mock"
	_ "github.com/stretchr/testify/require"
)
