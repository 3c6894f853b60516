// ABOUTME: Configuration options for the LinkOff library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package linkoff

import (
	"linkoff-engine/core/engine"
	"linkoff-engine/core/interfaces"
	"linkoff-engine/core/workers"
	"linkoff-engine/pkg/clock"
	"linkoff-engine/pkg/featureflags"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithStore sets the settings store
func WithStore(store interfaces.SettingsStore) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

// WithHTTPClient sets the client used to download pages and feeds
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithEngineConfig replaces the engine timings and policies
func WithEngineConfig(cfg engine.Config) Option {
	return func(c *Config) error {
		c.Engine = cfg
		return nil
	}
}

// WithFlags sets the feature flag manager
func WithFlags(flags featureflags.Manager) Option {
	return func(c *Config) error {
		c.Flags = flags
		return nil
	}
}

// WithClock sets the clock driving every timer
func WithClock(clk clock.Clock) Option {
	return func(c *Config) error {
		c.Clock = clk
		return nil
	}
}

// WithRunLoop serialises engine work on a dedicated goroutine instead of
// running it on the caller's.
func WithRunLoop(cfg workers.RunLoopConfig) Option {
	return func(c *Config) error {
		c.RunLoop = &cfg
		return nil
	}
}

// WithPage sets the page the client starts with
func WithPage(url, markup string) Option {
	return func(c *Config) error {
		if url == "" {
			return NewError(ErrorTypeValidation, "page URL is required")
		}
		c.PageURL = url
		c.PageHTML = markup
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Store:      DefaultStore(),
		HTTPClient: DefaultHTTPClient(),
		Logger:     QuietLogger(),
		Engine:     engine.DefaultConfig(),
		Clock:      clock.Real(),
		PageURL:    "about:blank",
		PageHTML:   "<html><body></body></html>",
	}
}
