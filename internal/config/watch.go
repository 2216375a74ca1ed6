// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package config

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/knadh/koanf/providers/file"
	"github.com/samber/oops"

	"github.com/inkpost/inkpost/pkg/errutil"
)

// Reloader re-reads configuration into a Holder.
type Reloader struct {
	loader *Loader
	holder *Holder
	logger *slog.Logger
}

// NewReloader creates a Reloader.
func NewReloader(loader *Loader, holder *Holder, logger *slog.Logger) *Reloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reloader{loader: loader, holder: holder, logger: logger}
}

// Reload loads a fresh snapshot and publishes it. On failure the previous
// snapshot stays in place.
func (r *Reloader) Reload() error {
	s, err := r.loader.Load()
	if err != nil {
		return oops.Code("CONFIG_RELOAD_FAILED").Wrap(err)
	}
	r.holder.Store(s)
	r.logger.Info("configuration reloaded", "location", s.ConfigInfo.Location)
	return nil
}

// Watch reloads on SIGHUP and, when a config file is in use, on file
// changes. It blocks until ctx is done.
func (r *Reloader) Watch(ctx context.Context) error {
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)

	changed := make(chan struct{}, 1)
	if path := r.loader.ResolvedPath(); path != "" {
		fp := file.Provider(path)
		err := fp.Watch(func(_ any, err error) {
			if err != nil {
				r.logger.Warn("config watch error", "path", path, "error", err)
				return
			}
			select {
			case changed <- struct{}{}:
			default:
			}
		})
		if err != nil {
			return oops.Code("CONFIG_WATCH_FAILED").With("path", path).Wrap(err)
		}
		defer func() {
			if err := fp.Unwatch(); err != nil {
				r.logger.Debug("config unwatch failed", "error", err)
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sighup:
			r.reloadAndLog("signal")
		case <-changed:
			r.reloadAndLog("file change")
		}
	}
}

func (r *Reloader) reloadAndLog(trigger string) {
	if err := r.Reload(); err != nil {
		errutil.LogError(r.logger, "config reload failed; keeping previous settings", oops.With("trigger", trigger).Wrap(err))
	}
}
