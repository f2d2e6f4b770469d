// Package pluto wires the assistant together: wake detection, intent
// classification, tool dispatch, speech output, and the dashboard surfaces.
package pluto

import (
	"fmt"
	"strings"

	"github.com/plutovoice/go-pluto/internal/config"
)

// Default configuration values.
const (
	DefaultOllamaURL = "http://localhost:11434/v1"
	DefaultLanguage  = "en"
)

// Config holds all configuration for the assistant daemon.
// Flag parsing is done in cmd/pluto/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// Port serves the dashboard REST API and websockets.
	Port string

	// OllamaURL is the OpenAI-compatible endpoint of the local model daemon.
	OllamaURL string

	// OllamaFallbackURL optionally names a second endpoint tried when the
	// primary fails, e.g. a bigger box on the LAN.
	OllamaFallbackURL string

	// Language is the startup response language ("en" or "ta").
	Language string

	// ListenEnabled starts the microphone loop active.
	ListenEnabled bool

	// ListenerCommand is the external recognizer argv. Empty selects the
	// mock listener, which keeps the daemon usable without a microphone.
	ListenerCommand []string

	// Discover enables the startup PATH scan for launchable apps.
	Discover bool

	// ManualApps merges user-supplied launch commands into the capability
	// registry, e.g. "chrome" -> ["/opt/google/chrome/chrome"].
	ManualApps map[string][]string
}

// DefaultConfig returns sensible defaults for the assistant.
func DefaultConfig() Config {
	return Config{
		Port:          config.DefaultPort,
		OllamaURL:     DefaultOllamaURL,
		Language:      DefaultLanguage,
		ListenEnabled: true,
		Discover:      true,
	}
}

// LoadEnvConfig loads configuration values from environment variables.
// Call this after flag parsing to apply environment overrides.
func (c *Config) LoadEnvConfig() {
	if port := config.Env("PLUTO_PORT", ""); port != "" {
		c.Port = port
	}
	if url := config.Env("OLLAMA_URL", ""); url != "" {
		c.OllamaURL = url
	}
	if url := config.Env("OLLAMA_FALLBACK_URL", ""); url != "" {
		c.OllamaFallbackURL = url
	}
	if lang := config.Env("PLUTO_LANG", ""); lang != "" {
		c.Language = lang
	}
	if cmd := config.Env("PLUTO_LISTENER", ""); cmd != "" {
		c.ListenerCommand = strings.Fields(cmd)
	}
	c.Debug = config.EnvBool("PLUTO_DEBUG", c.Debug)
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Port == "" {
		return &ConfigError{Field: "Port", Message: "dashboard port must not be empty"}
	}
	if c.Language != "en" && c.Language != "ta" {
		return &ConfigError{Field: "Language", Message: fmt.Sprintf("unsupported language %q: must be en or ta", c.Language)}
	}
	if c.OllamaURL == "" {
		return &ConfigError{Field: "OllamaURL", Message: "model endpoint URL must not be empty"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
