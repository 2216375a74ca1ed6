// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/inkpost/inkpost/internal/xdg"
)

// FlagMapper translates a command-line flag into a config key and value.
// Returning an empty key leaves the flag out of the configuration.
type FlagMapper func(f *pflag.Flag, flags *pflag.FlagSet) (string, any)

// Loader assembles Settings from every configuration source.
type Loader struct {
	// Path is the YAML file. When empty, DefaultConfigFile is looked up in
	// the working directory and then in the XDG config directory.
	Path string
	// EnvPrefix selects environment variables. Defaults to DefaultEnvPrefix.
	EnvPrefix string
	// Flags, when set, override every other source for flags the user changed.
	Flags *pflag.FlagSet
	// MapFlag maps flags to keys. Nil maps each flag by name.
	MapFlag FlagMapper
}

// ResolvedPath returns the file the loader reads, or "" when there is none.
func (l *Loader) ResolvedPath() string {
	if l.Path != "" {
		return l.Path
	}
	for _, candidate := range []string{DefaultConfigFile, xdg.ConfigFile(DefaultConfigFile)} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func (l *Loader) envPrefix() string {
	if l.EnvPrefix != "" {
		return l.EnvPrefix
	}
	return DefaultEnvPrefix
}

// Load reads every source and returns a validated snapshot.
func (l *Loader) Load() (*Settings, error) {
	k := koanf.New(".")
	path := l.ResolvedPath()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, oops.Code("CONFIG_NOT_FOUND").With("path", path).Wrap(err)
			}
			return nil, oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
		}
		if err := ValidateYAML(data); err != nil {
			return nil, oops.With("path", path).Wrap(err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
		}
	}

	prefix := l.envPrefix()
	if err := k.Load(env.Provider(prefix, ".", envKey(prefix)), nil); err != nil {
		return nil, oops.Code("CONFIG_ENV_FAILED").With("prefix", prefix).Wrap(err)
	}

	if l.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(l.Flags, ".", k, l.flagCallback()), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	settings := Defaults()
	if err := k.Unmarshal("", settings); err != nil {
		return nil, oops.Code("CONFIG_DECODE_FAILED").Wrap(err)
	}
	settings.ConfigInfo.Location = path
	settings.ConfigInfo.EnvPrefix = prefix

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (l *Loader) flagCallback() func(f *pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		if l.MapFlag != nil {
			return l.MapFlag(f, l.Flags)
		}
		return f.Name, posflag.FlagVal(l.Flags, f)
	}
}

// envKey turns INKPOST_DATABASE__URL into database.url.
func envKey(prefix string) func(string) string {
	return func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, prefix))
		return strings.ReplaceAll(s, "__", ".")
	}
}
