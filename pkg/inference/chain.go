package inference

import (
	"context"
	"log/slog"
)

// Chain tries providers in order until one succeeds. Order is policy: put the
// preferred backend first and fallbacks after it.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

var _ Provider = (*Chain)(nil)

// NewChain creates a provider chain. At least one provider is required.
func NewChain(providers ...Provider) (*Chain, error) {
	if len(providers) == 0 {
		return nil, ErrProviderUnavailable
	}
	return &Chain{
		providers: providers,
		logger:    slog.Default(),
	}, nil
}

// NewChainWithLogger creates a provider chain with a custom logger.
func NewChainWithLogger(logger *slog.Logger, providers ...Provider) (*Chain, error) {
	chain, err := NewChain(providers...)
	if err != nil {
		return nil, err
	}
	chain.logger = logger
	return chain, nil
}

// Chat tries each chat-capable provider in order until one answers.
func (c *Chain) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	var errs []error

	for i, p := range c.providers {
		if !p.Capabilities().Chat {
			continue
		}

		resp, err := p.Chat(ctx, req)
		if err == nil {
			if i > 0 {
				c.logger.Info("chat succeeded on fallback provider", "provider", i)
			}
			return resp, nil
		}

		c.logger.Warn("chat provider failed", "provider", i, "error", err)
		errs = append(errs, err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, &ChainError{Errors: errs}
}

// ListModels returns the model listing from the first provider that answers.
func (c *Chain) ListModels(ctx context.Context) ([]string, error) {
	var errs []error

	for i, p := range c.providers {
		if !p.Capabilities().Models {
			continue
		}

		models, err := p.ListModels(ctx)
		if err == nil {
			return models, nil
		}

		c.logger.Warn("model listing failed", "provider", i, "error", err)
		errs = append(errs, err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, &ChainError{Errors: errs}
}

// Capabilities returns the union of all provider capabilities.
func (c *Chain) Capabilities() Capabilities {
	var caps Capabilities
	for _, p := range c.providers {
		pc := p.Capabilities()
		caps.Chat = caps.Chat || pc.Chat
		caps.Models = caps.Models || pc.Models
	}
	return caps
}

// Health passes if at least one provider is healthy.
func (c *Chain) Health(ctx context.Context) error {
	healthy := 0
	var errs []error

	for _, p := range c.providers {
		if err := p.Health(ctx); err != nil {
			errs = append(errs, err)
			continue
		}
		healthy++
	}

	if healthy == 0 {
		return &ChainError{Errors: errs}
	}
	return nil
}

// Close closes all providers, returning the last error seen.
func (c *Chain) Close() error {
	var lastErr error
	for _, p := range c.providers {
		if err := p.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Providers returns the providers in the chain, in fallback order.
func (c *Chain) Providers() []Provider {
	return c.providers
}
