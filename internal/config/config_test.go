// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package config_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/pkg/errutil"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inkpost.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := (&config.Loader{}).Load()
	require.NoError(t, err)
	assert.Equal(t, "", s.ConfigInfo.Location)
	assert.Equal(t, config.DefaultEnvPrefix, s.ConfigInfo.EnvPrefix)
	assert.Equal(t, config.DefaultHTTPAddr, s.Server.HTTPAddr)
	assert.Equal(t, config.DefaultTokenSecret, s.TokenSecret)
	assert.Equal(t, time.Hour, s.TokenLifetime())
	assert.Empty(t, s.Database.URL)
}

func TestLoader_ResolvedPath(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		assert.Equal(t, "/etc/inkpost.yaml", (&config.Loader{Path: "/etc/inkpost.yaml"}).ResolvedPath())
	})

	t.Run("working directory before XDG", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		xdgHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdgHome)
		require.NoError(t, os.MkdirAll(filepath.Join(xdgHome, "inkpost"), 0o700))
		require.NoError(t, os.WriteFile(filepath.Join(xdgHome, "inkpost", config.DefaultConfigFile), nil, 0o600))
		require.NoError(t, os.WriteFile(config.DefaultConfigFile, nil, 0o600))

		assert.Equal(t, config.DefaultConfigFile, (&config.Loader{}).ResolvedPath())
	})

	t.Run("falls back to XDG config dir", func(t *testing.T) {
		t.Chdir(t.TempDir())
		xdgHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdgHome)
		want := filepath.Join(xdgHome, "inkpost", config.DefaultConfigFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(want), 0o700))
		require.NoError(t, os.WriteFile(want, []byte("token_secret: from-xdg\n"), 0o600))

		loader := &config.Loader{}
		assert.Equal(t, want, loader.ResolvedPath())
		s, err := loader.Load()
		require.NoError(t, err)
		assert.Equal(t, "from-xdg", s.TokenSecret)
		assert.Equal(t, want, s.ConfigInfo.Location)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		assert.Empty(t, (&config.Loader{}).ResolvedPath())
	})
}

func TestLoad_SourcePrecedence(t *testing.T) {
	path := writeConfig(t, `
token_secret: from-file
token_timeout_seconds: 60
database:
  url: postgres://file
logging:
  log_level: debug
  log_format: text
`)
	t.Setenv("INKPOST_TOKEN_SECRET", "from-env")
	t.Setenv("INKPOST_DATABASE__URL", "postgres://env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-format", "json", "")
	flags.Int("port", 8080, "")
	require.NoError(t, flags.Parse([]string{"--port", "9999"}))

	loader := &config.Loader{
		Path:  path,
		Flags: flags,
		MapFlag: func(f *pflag.Flag, fs *pflag.FlagSet) (string, any) {
			switch f.Name {
			case "port":
				port, _ := fs.GetInt("port")
				return "server.http_addr", fmt.Sprintf(":%d", port)
			case "log-format":
				return "logging.log_format", f.Value.String()
			}
			return "", nil
		},
	}

	s, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, path, s.ConfigInfo.Location)
	assert.Equal(t, "from-env", s.TokenSecret, "env overrides file")
	assert.Equal(t, "postgres://env", s.Database.URL, "double underscore nests")
	assert.Equal(t, 60, s.TokenTimeoutSeconds)
	assert.Equal(t, time.Minute, s.TokenLifetime())
	assert.Equal(t, ":9999", s.Server.HTTPAddr, "changed flag overrides everything")
	assert.Equal(t, "text", s.Logging.LogFormat, "unchanged flag default does not override the file")
	assert.Equal(t, "debug", s.Logging.LogLevel)
}

func TestLoad_EnvIntegerIsDecoded(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INKPOST_TOKEN_TIMEOUT_SECONDS", "120")

	s, err := (&config.Loader{}).Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, s.TokenLifetime())
}

func TestLoad_CustomEnvPrefix(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BLOG_TOKEN_SECRET", "custom")

	s, err := (&config.Loader{EnvPrefix: "BLOG_"}).Load()
	require.NoError(t, err)
	assert.Equal(t, "custom", s.TokenSecret)
	assert.Equal(t, "BLOG_", s.ConfigInfo.EnvPrefix)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"unknown key", "tokn_secret: typo\n", "CONFIG_SCHEMA_VIOLATION"},
		{"wrong type", "token_timeout_seconds: soon\n", "CONFIG_SCHEMA_VIOLATION"},
		{"bad log format", "logging:\n  log_format: xml\n", "CONFIG_SCHEMA_VIOLATION"},
		{"negative timeout", "token_timeout_seconds: -5\n", "CONFIG_SCHEMA_VIOLATION"},
		{"broken yaml", "database: [\n", "CONFIG_INVALID_YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&config.Loader{Path: writeConfig(t, tt.body)}).Load()
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, tt.wantCode)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := (&config.Loader{Path: filepath.Join(t.TempDir(), "absent.yaml")}).Load()
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "CONFIG_NOT_FOUND")
	})
}

func TestGenerateSchema(t *testing.T) {
	raw, err := config.GenerateSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, config.SchemaID, doc["$id"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"config_info", "database", "logging", "server", "token_secret", "token_timeout_seconds"} {
		assert.Contains(t, props, key)
	}
}

func TestValidateYAML_EmptyDocument(t *testing.T) {
	assert.NoError(t, config.ValidateYAML(nil))
	assert.NoError(t, config.ValidateYAML([]byte("# only a comment\n")))
}

func TestSettings_Redacted(t *testing.T) {
	s := config.Defaults()
	s.TokenSecret = "hunter2"
	s.Database.URL = "postgres://app:pa55@db:5432/inkpost"

	r := s.Redacted()
	assert.Equal(t, "<redacted>", r.TokenSecret)
	assert.NotContains(t, r.Database.URL, "pa55")
	assert.Equal(t, "hunter2", s.TokenSecret, "original is untouched")
}

func TestHolder_TokenConfigSnapshot(t *testing.T) {
	s := config.Defaults()
	s.TokenSecret = "first"
	s.TokenTimeoutSeconds = 10
	h := config.NewHolder(s)

	cfg := h.TokenConfig()
	assert.Equal(t, []byte("first"), cfg.Secret)
	assert.Equal(t, 10*time.Second, cfg.Lifetime)

	next := config.Defaults()
	next.TokenSecret = "second"
	h.Store(next)
	assert.Equal(t, []byte("second"), h.TokenConfig().Secret)
	assert.Equal(t, time.Hour, h.TokenConfig().Lifetime)
}

func TestHolder_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := config.Defaults()
	a.TokenSecret, a.TokenTimeoutSeconds = "a", 100
	b := config.Defaults()
	b.TokenSecret, b.TokenTimeoutSeconds = "b", 200
	h := config.NewHolder(a)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if i%2 == 0 {
				h.Store(b)
			} else {
				h.Store(a)
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		cfg := h.TokenConfig()
		switch string(cfg.Secret) {
		case "a":
			assert.Equal(t, 100*time.Second, cfg.Lifetime)
		case "b":
			assert.Equal(t, 200*time.Second, cfg.Lifetime)
		default:
			t.Fatalf("unexpected secret %q", cfg.Secret)
		}
	}
	close(stop)
	wg.Wait()
}

func TestReloader_KeepsPreviousOnFailure(t *testing.T) {
	path := writeConfig(t, "token_secret: one\n")
	loader := &config.Loader{Path: path}
	initial, err := loader.Load()
	require.NoError(t, err)

	h := config.NewHolder(initial)
	r := config.NewReloader(loader, h, nil)

	require.NoError(t, os.WriteFile(path, []byte("token_secret: two\n"), 0o600))
	require.NoError(t, r.Reload())
	assert.Equal(t, "two", h.Load().TokenSecret)

	require.NoError(t, os.WriteFile(path, []byte("token_secret: [\n"), 0o600))
	require.Error(t, r.Reload())
	assert.Equal(t, "two", h.Load().TokenSecret)
}
