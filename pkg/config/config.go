// ABOUTME: Configuration management for the engine with environment variable support
// ABOUTME: An optional YAML file overlays the environment values

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server contains control API configuration
	Server ServerConfig `yaml:"server"`

	// Scan contains scan loop timings
	Scan ScanConfig `yaml:"scan"`

	// Reconcile selects when rule changes reset items
	Reconcile ReconcileConfig `yaml:"reconcile"`

	// Store contains settings store configuration
	Store StoreConfig `yaml:"store"`

	// Log contains logger configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `yaml:"port"`

	// RateLimit is the number of requests allowed per client per window
	RateLimit int `yaml:"rate_limit"`

	// RateWindowSeconds is the rate limit window
	RateWindowSeconds int `yaml:"rate_window_seconds"`

	// AllowedOrigins is the CORS allow list; empty disables CORS
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ScanConfig holds scan loop configuration
type ScanConfig struct {
	// PeriodMillis is the tick period of both loops
	PeriodMillis int `yaml:"period_ms"`

	// ResyncEvery resets items every N ticks; 0 disables
	ResyncEvery int `yaml:"resync_every"`

	// GuardThreshold is the feed item count at or below which hide mode skips
	GuardThreshold int `yaml:"guard_threshold"`
}

// ReconcileConfig holds per-surface reset policies ("shrink" or "any")
type ReconcileConfig struct {
	Feed string `yaml:"feed"`
	Jobs string `yaml:"jobs"`
}

// StoreConfig holds settings store backend configuration
type StoreConfig struct {
	// Type specifies the backend (memory/redis/sqlite/file)
	Type string `yaml:"type"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `yaml:"redis"`

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig `yaml:"sqlite"`

	// File contains JSON file configuration
	File FileConfig `yaml:"file"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `yaml:"address"`

	// Password is the Redis authentication password
	Password string `yaml:"password"`

	// DB is the Redis database number
	DB int `yaml:"db"`

	// Key is the JSON document holding the settings
	Key string `yaml:"key"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `yaml:"path"`
}

// FileConfig holds JSON file store configuration
type FileConfig struct {
	// Path is the settings file; comments are allowed
	Path string `yaml:"path"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`

	// JSON switches to the JSON formatter
	JSON bool `yaml:"json"`

	// File is a rotated log file; empty logs to stderr
	File string `yaml:"file"`
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnvOrDefault("PORT", "8000"),
			RateLimit:         getEnvAsIntOrDefault("RATE_LIMIT", 100),
			RateWindowSeconds: getEnvAsIntOrDefault("RATE_WINDOW_SECONDS", 60),
		},
		Scan: ScanConfig{
			PeriodMillis:   getEnvAsIntOrDefault("SCAN_PERIOD_MS", 350),
			ResyncEvery:    getEnvAsIntOrDefault("SCAN_RESYNC_EVERY", 10),
			GuardThreshold: getEnvAsIntOrDefault("SCAN_GUARD_THRESHOLD", 5),
		},
		Reconcile: ReconcileConfig{
			Feed: getEnvOrDefault("FEED_RESET_POLICY", "shrink"),
			Jobs: getEnvOrDefault("JOBS_RESET_POLICY", "any"),
		},
		Store: StoreConfig{
			Type: getEnvOrDefault("STORE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
				Key:      getEnvOrDefault("REDIS_KEY", "linkoff:settings"),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "linkoff.db"),
			},
			File: FileConfig{
				Path: getEnvOrDefault("SETTINGS_FILE", "linkoff-settings.json"),
			},
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
			JSON:  getEnvAsBoolOrDefault("LOG_JSON", false),
			File:  getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// LoadFile loads the environment configuration and overlays the YAML file
// at path. Keys missing from the file keep their environment value.
func LoadFile(path string) (*Config, error) {
	cfg, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ScanPeriod returns the scan tick period
func (c *Config) ScanPeriod() time.Duration {
	return time.Duration(c.Scan.PeriodMillis) * time.Millisecond
}

// RateWindow returns the rate limit window
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.Server.RateWindowSeconds) * time.Second
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns the environment variable as bool or a default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Scan.PeriodMillis < 1 {
		return errors.New("scan period must be at least 1 millisecond")
	}

	if c.Scan.ResyncEvery < 0 {
		return errors.New("resync interval cannot be negative")
	}

	if c.Scan.GuardThreshold < 0 {
		return errors.New("guard threshold cannot be negative")
	}

	for surface, policy := range map[string]string{"feed": c.Reconcile.Feed, "jobs": c.Reconcile.Jobs} {
		if policy != "shrink" && policy != "any" {
			return fmt.Errorf("%s reset policy must be 'shrink' or 'any'", surface)
		}
	}

	switch c.Store.Type {
	case "memory":
	case "redis":
		if c.Store.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis store")
		}
	case "sqlite":
		if c.Store.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite store")
		}
	case "file":
		if c.Store.File.Path == "" {
			return errors.New("settings file path cannot be empty when using file store")
		}
	default:
		return errors.New("store type must be 'memory', 'redis', 'sqlite' or 'file'")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log level must be 'debug', 'info', 'warn' or 'error'")
	}

	return nil
}
