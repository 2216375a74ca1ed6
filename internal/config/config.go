// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

// Package config loads and publishes the process configuration.
//
// Settings are read from defaults, an optional YAML file, INKPOST_
// environment variables and command-line flags, in that order. A Holder
// publishes immutable snapshots that readers take once per operation.
package config

import (
	"net/url"
	"time"

	"github.com/samber/oops"
)

// Defaults.
const (
	DefaultEnvPrefix           = "INKPOST_"
	DefaultConfigFile          = "inkpost.yaml"
	DefaultHTTPAddr            = ":8080"
	DefaultGRPCAddr            = "localhost:9000"
	DefaultMetricsAddr         = "127.0.0.1:9100"
	DefaultLogFormat           = "json"
	DefaultLogLevel            = "info"
	DefaultTokenSecret         = "secret"
	DefaultTokenTimeoutSeconds = 3600
)

// ConfigInfo records where the settings came from.
type ConfigInfo struct {
	Location  string `koanf:"location" json:"location,omitempty" yaml:"location,omitempty" jsonschema:"description=Path of the loaded config file"`
	EnvPrefix string `koanf:"env_prefix" json:"env_prefix,omitempty" yaml:"env_prefix,omitempty" jsonschema:"description=Environment variable prefix"`
}

// Database selects the storage backend. An empty URL selects the in-memory stores.
type Database struct {
	URL string `koanf:"url" json:"url,omitempty" yaml:"url,omitempty" jsonschema:"description=PostgreSQL connection URL; empty uses in-memory stores"`
}

// Logging configures the slog handler.
type Logging struct {
	LogLevel  string `koanf:"log_level" json:"log_level,omitempty" yaml:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	LogFormat string `koanf:"log_format" json:"log_format,omitempty" yaml:"log_format,omitempty" jsonschema:"enum=json,enum=text"`
}

// Server holds listen addresses. An empty MetricsAddr disables the
// observability server.
type Server struct {
	HTTPAddr    string `koanf:"http_addr" json:"http_addr,omitempty" yaml:"http_addr,omitempty"`
	GRPCAddr    string `koanf:"grpc_addr" json:"grpc_addr,omitempty" yaml:"grpc_addr,omitempty"`
	MetricsAddr string `koanf:"metrics_addr" json:"metrics_addr,omitempty" yaml:"metrics_addr,omitempty"`
}

// Settings is one immutable configuration snapshot.
type Settings struct {
	ConfigInfo          ConfigInfo `koanf:"config_info" json:"config_info,omitempty" yaml:"config_info,omitempty"`
	Database            Database   `koanf:"database" json:"database,omitempty" yaml:"database,omitempty"`
	Logging             Logging    `koanf:"logging" json:"logging,omitempty" yaml:"logging,omitempty"`
	Server              Server     `koanf:"server" json:"server,omitempty" yaml:"server,omitempty"`
	TokenSecret         string     `koanf:"token_secret" json:"token_secret,omitempty" yaml:"token_secret,omitempty" jsonschema:"description=HMAC secret for session tokens"`
	TokenTimeoutSeconds int        `koanf:"token_timeout_seconds" json:"token_timeout_seconds,omitempty" yaml:"token_timeout_seconds,omitempty" jsonschema:"minimum=0,description=Session token lifetime in seconds"`
}

// Defaults returns the settings used before any source is applied.
func Defaults() *Settings {
	return &Settings{
		ConfigInfo: ConfigInfo{EnvPrefix: DefaultEnvPrefix},
		Logging:    Logging{LogLevel: DefaultLogLevel, LogFormat: DefaultLogFormat},
		Server: Server{
			HTTPAddr:    DefaultHTTPAddr,
			GRPCAddr:    DefaultGRPCAddr,
			MetricsAddr: DefaultMetricsAddr,
		},
		TokenSecret:         DefaultTokenSecret,
		TokenTimeoutSeconds: DefaultTokenTimeoutSeconds,
	}
}

// TokenLifetime returns the configured token lifetime, falling back to the
// default when unset or non-positive.
func (s *Settings) TokenLifetime() time.Duration {
	if s.TokenTimeoutSeconds <= 0 {
		return DefaultTokenTimeoutSeconds * time.Second
	}
	return time.Duration(s.TokenTimeoutSeconds) * time.Second
}

// Validate checks values the schema cannot express.
func (s *Settings) Validate() error {
	if s.TokenTimeoutSeconds < 0 {
		return oops.Code("CONFIG_INVALID").
			With("token_timeout_seconds", s.TokenTimeoutSeconds).
			Errorf("token_timeout_seconds must not be negative")
	}
	switch s.Logging.LogFormat {
	case "json", "text":
	default:
		return oops.Code("CONFIG_INVALID").
			With("log_format", s.Logging.LogFormat).
			Errorf("log_format must be 'json' or 'text', got %q", s.Logging.LogFormat)
	}
	if s.Server.HTTPAddr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("server.http_addr is required")
	}
	return nil
}

// Redacted returns a copy safe to print.
func (s *Settings) Redacted() *Settings {
	c := *s
	if c.TokenSecret != "" {
		c.TokenSecret = "<redacted>"
	}
	if c.Database.URL != "" {
		c.Database.URL = redactURL(c.Database.URL)
	}
	return &c
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<redacted>"
	}
	return u.Redacted()
}
