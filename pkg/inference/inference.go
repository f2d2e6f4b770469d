// Package inference provides a provider-agnostic client for OpenAI-compatible
// chat completion APIs. The default configuration targets a local Ollama
// daemon, which serves the same wire format under /v1, but any compatible
// endpoint works. Providers can be stacked into a Chain that falls back in
// order when one fails.
package inference

import (
	"context"
)

// Provider is the interface implemented by all inference backends.
type Provider interface {
	// Chat sends a chat completion request and returns the response.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// ListModels returns the model IDs the backend currently serves.
	ListModels(ctx context.Context) ([]string, error)

	// Capabilities returns what this provider supports.
	Capabilities() Capabilities

	// Health checks if the provider is reachable.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// Capabilities describes what a provider supports.
type Capabilities struct {
	Chat   bool
	Models bool
}

// ChatRequest is a request for a chat completion.
type ChatRequest struct {
	Messages    []Message
	Model       string // overrides the configured default when set
	MaxTokens   int
	Temperature float64
	TopP        float64
	Stop        []string
}

// ChatResponse is the response from a chat completion.
type ChatResponse struct {
	Message      Message
	FinishReason string // "stop", "length"
	Usage        Usage
	Model        string
	LatencyMs    int64
}

// Usage tracks token consumption for a single request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
