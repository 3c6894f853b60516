// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for stores, loggers and HTTP clients

package linkoff

import (
	"time"

	"linkoff-engine/core/interfaces"
	httpInfra "linkoff-engine/infrastructure/http/standard"
	loggerInfra "linkoff-engine/infrastructure/logger/logrus"
	"linkoff-engine/infrastructure/settings/file"
	"linkoff-engine/infrastructure/settings/memory"
	"linkoff-engine/infrastructure/settings/sqlite"
)

// DefaultHTTPClient creates a default HTTP client with sensible timeouts
func DefaultHTTPClient() interfaces.HTTPClient {
	return httpInfra.NewClient(30 * time.Second)
}

// DefaultStore creates an empty in-memory settings store
func DefaultStore() interfaces.SettingsStore {
	return memory.NewStore(nil)
}

// DefaultLogger creates a text logger at the given level
func DefaultLogger(level string) interfaces.Logger {
	return loggerInfra.NewLogger(loggerInfra.Config{Level: level})
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return interfaces.NopLogger{}
}

// StoreOption represents settings store configuration options
type StoreOption struct {
	Type     StoreType
	FilePath string // for the sqlite and file stores
}

// StoreType represents the type of settings store
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeSQLite StoreType = "sqlite"
	StoreTypeFile   StoreType = "file"
)

// WithStoreOption creates a store based on the provided options
func WithStoreOption(opt StoreOption) Option {
	return func(c *Config) error {
		switch opt.Type {
		case StoreTypeMemory:
			c.Store = DefaultStore()
		case StoreTypeSQLite:
			if opt.FilePath == "" {
				return NewError(ErrorTypeConfiguration, "SQLite store requires file path")
			}
			store, err := sqlite.NewStore(opt.FilePath)
			if err != nil {
				return NewError(ErrorTypeConfiguration, "failed to open SQLite store").WithCause(err)
			}
			c.Store = store
			c.closers = append(c.closers, store.Close)
		case StoreTypeFile:
			if opt.FilePath == "" {
				return NewError(ErrorTypeConfiguration, "file store requires file path")
			}
			c.Store = file.NewStore(opt.FilePath)
		default:
			return NewError(ErrorTypeConfiguration, "unknown store type").
				WithContext("type", string(opt.Type))
		}
		return nil
	}
}
