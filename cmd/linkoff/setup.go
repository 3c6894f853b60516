// ABOUTME: Shared wiring for the linkoff subcommands
// ABOUTME: Builds config, logger, settings store and engine timings from flags

package main

import (
	"fmt"
	"strconv"
	"strings"

	"linkoff-engine/core/domain"
	"linkoff-engine/core/engine"
	"linkoff-engine/core/interfaces"
	"linkoff-engine/core/reconcile"
	"linkoff-engine/core/scan"
	"linkoff-engine/core/settings"
	logrusLogger "linkoff-engine/infrastructure/logger/logrus"
	"linkoff-engine/infrastructure/settings/file"
	"linkoff-engine/infrastructure/settings/memory"
	redisStore "linkoff-engine/infrastructure/settings/redis"
	"linkoff-engine/infrastructure/settings/sqlite"
	"linkoff-engine/pkg/config"
)

// loadConfig reads the environment and, when path is set, the YAML file
// on top of it.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.LoadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.LogConfig) interfaces.Logger {
	return logrusLogger.NewLogger(logrusLogger.Config{
		Level: cfg.Level,
		JSON:  cfg.JSON,
		File:  cfg.File,
	})
}

// engineConfig maps the scan and reconcile sections onto the engine
// timings. Manual loops only advance when ticked.
func engineConfig(cfg *config.Config, manual bool) (engine.Config, error) {
	out := engine.DefaultConfig()

	feedPolicy, err := reconcile.ParsePolicy(cfg.Reconcile.Feed)
	if err != nil {
		return out, err
	}
	jobsPolicy, err := reconcile.ParsePolicy(cfg.Reconcile.Jobs)
	if err != nil {
		return out, err
	}
	out.FeedPolicy = feedPolicy
	out.JobsPolicy = jobsPolicy

	for _, loop := range []*scan.Config{&out.Feed, &out.Jobs} {
		loop.Period = cfg.ScanPeriod()
		loop.ResyncEvery = cfg.Scan.ResyncEvery
		loop.GuardThreshold = cfg.Scan.GuardThreshold
		loop.Manual = manual
	}
	return out, nil
}

// openStore opens the configured settings store. The returned func
// releases it. An unreachable Redis falls back to memory.
func openStore(cfg config.StoreConfig, logger interfaces.Logger) (interfaces.SettingsStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Type {
	case "redis":
		store, err := redisStore.NewStore(cfg.Redis, logger)
		if err != nil {
			logger.Error("Failed to open Redis store, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewStore(nil), noop, nil
		}
		logger.Info("Using Redis store", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return store, store.Close, nil
	case "sqlite":
		store, err := sqlite.NewStore(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("Using SQLite store", map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return store, store.Close, nil
	case "file":
		logger.Info("Using settings file", map[string]interface{}{
			"path": cfg.File.Path,
		})
		return file.NewStore(cfg.File.Path), noop, nil
	}

	logger.Info("Using memory store", nil)
	return memory.NewStore(nil), noop, nil
}

// parseSettings turns key=value pairs into typed setting values. Values
// of boolean settings must parse as booleans.
func parseSettings(pairs []string) (map[string]any, error) {
	defaults := domain.Defaults()
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("setting %q must look like key=value", pair)
		}
		def, known := defaults[key]
		if !known {
			return nil, fmt.Errorf("unknown setting %q", key)
		}
		if _, isBool := def.(bool); isBool {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("setting %q needs true or false, got %q", key, value)
			}
			out[key] = b
			continue
		}
		out[key] = value
	}
	if err := settings.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}
