package inference

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Config holds provider configuration.
type Config struct {
	// BaseURL is the API endpoint, e.g. "http://localhost:11434/v1".
	BaseURL string

	// APIKey authenticates requests. Local daemons don't need one.
	APIKey string

	// Model is the default model when a request doesn't name one.
	Model string

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float64

	// TopP controls nucleus sampling.
	TopP float64

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// MaxRetries is how many times to retry retryable failures.
	MaxRetries int

	// RetryDelay is the base delay between retries, scaled by attempt.
	RetryDelay time.Duration

	// HTTPClient overrides the default HTTP client when set.
	HTTPClient *http.Client

	// Logger receives request and fallback logs.
	Logger *slog.Logger
}

// DefaultConfig returns a config targeting a local Ollama daemon.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "http://localhost:11434/v1",
		Model:       "phi3:mini",
		MaxTokens:   1024,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
		MaxRetries:  2,
		RetryDelay:  100 * time.Millisecond,
		Logger:      slog.Default(),
	}
}

// Option configures a provider.
type Option func(*Config)

// WithBaseURL sets the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel sets the default model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) Option {
	return func(c *Config) { c.MaxTokens = n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = t }
}

// WithTopP sets the nucleus sampling parameter.
func WithTopP(p float64) Option {
	return func(c *Config) { c.TopP = p }
}

// WithTimeout bounds a single HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithRetry configures retry behavior for retryable failures.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) { c.HTTPClient = client }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// Apply applies options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("inference: base URL is required")
	}
	if c.Model == "" {
		return ErrNoModel
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("inference: timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("inference: max retries must not be negative, got %d", c.MaxRetries)
	}
	return nil
}
