package registry

import (
	"log/slog"
	"time"
)

// Config holds registry construction options.
type Config struct {
	// Runner executes launch and kill commands.
	Runner Runner

	// Logger for registry operations.
	Logger *slog.Logger

	// Discover enables the one-time PATH scan at startup.
	Discover bool

	// WarmupDelay is how long to wait after launching a desktop media app
	// before opening the web search that targets it.
	WarmupDelay time.Duration

	// ManualApps merges user-supplied launch commands into the manual
	// catalog, overriding built-in entries of the same name.
	ManualApps map[string][]string
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		Runner:      ExecRunner{},
		Logger:      slog.Default(),
		Discover:    true,
		WarmupDelay: 3 * time.Second,
	}
}

// Option configures the registry.
type Option func(*Config)

// Apply applies options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithRunner sets the command runner.
func WithRunner(r Runner) Option {
	return func(c *Config) { c.Runner = r }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithDiscovery toggles the startup PATH scan.
func WithDiscovery(enabled bool) Option {
	return func(c *Config) { c.Discover = enabled }
}

// WithWarmupDelay sets the desktop app warm-up wait.
func WithWarmupDelay(d time.Duration) Option {
	return func(c *Config) { c.WarmupDelay = d }
}

// WithManualApps adds user-configured app launch commands.
func WithManualApps(apps map[string][]string) Option {
	return func(c *Config) { c.ManualApps = apps }
}
