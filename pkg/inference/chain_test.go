package inference

import (
	"context"
	"errors"
	"testing"
)

func TestChainFallback(t *testing.T) {
	ctx := context.Background()

	failing := WithError(errors.New("provider 1 failed"))

	working := NewMock()
	working.ChatFunc = func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
		return &ChatResponse{
			Message:      NewAssistantMessage("From working provider"),
			FinishReason: "stop",
		}, nil
	}

	chain, err := NewChain(failing, working)
	if err != nil {
		t.Fatalf("Failed to create chain: %v", err)
	}
	defer chain.Close()

	resp, err := chain.Chat(ctx, &ChatRequest{
		Messages: []Message{NewUserMessage("test")},
	})
	if err != nil {
		t.Fatalf("Chain chat failed: %v", err)
	}

	if resp.Message.Content != "From working provider" {
		t.Errorf("Unexpected response: %s", resp.Message.Content)
	}
	if working.CallCount("Chat") != 1 {
		t.Errorf("Expected 1 Chat call on fallback, got %d", working.CallCount("Chat"))
	}
}

func TestChainAllFail(t *testing.T) {
	ctx := context.Background()

	p1 := WithError(errors.New("provider 1 failed"))
	p2 := WithError(errors.New("provider 2 failed"))

	chain, _ := NewChain(p1, p2)
	defer chain.Close()

	_, err := chain.Chat(ctx, &ChatRequest{
		Messages: []Message{NewUserMessage("test")},
	})
	if err == nil {
		t.Fatal("Expected error when all providers fail")
	}

	var chainErr *ChainError
	if !errors.As(err, &chainErr) {
		t.Fatalf("Expected ChainError, got %T", err)
	}
	if len(chainErr.Errors) != 2 {
		t.Errorf("Expected 2 errors, got %d", len(chainErr.Errors))
	}
}

func TestChainListModels(t *testing.T) {
	ctx := context.Background()

	failing := WithError(errors.New("daemon down"))
	working := NewMock()

	chain, _ := NewChain(failing, working)
	defer chain.Close()

	models, err := chain.ListModels(ctx)
	if err != nil {
		t.Fatalf("Chain ListModels failed: %v", err)
	}
	if len(models) == 0 {
		t.Error("Expected models from fallback provider")
	}
}

func TestChainSkipsIncapable(t *testing.T) {
	ctx := context.Background()

	// First provider can't chat at all; chain must not attempt it.
	noChat := NewMock()
	noChat.ChatFunc = nil
	noChat.CapabilitiesOverride = &Capabilities{Models: true}

	working := NewMock()

	chain, _ := NewChain(noChat, working)
	defer chain.Close()

	if _, err := chain.Chat(ctx, &ChatRequest{Messages: []Message{NewUserMessage("test")}}); err != nil {
		t.Fatalf("Chain chat failed: %v", err)
	}

	if noChat.CallCount("Chat") != 0 {
		t.Errorf("Expected chat-incapable provider to be skipped, got %d calls", noChat.CallCount("Chat"))
	}
}

func TestChainCapabilities(t *testing.T) {
	chatOnly := NewMock()
	chatOnly.CapabilitiesOverride = &Capabilities{Chat: true}

	modelsOnly := NewMock()
	modelsOnly.CapabilitiesOverride = &Capabilities{Models: true}

	chain, _ := NewChain(chatOnly, modelsOnly)
	defer chain.Close()

	caps := chain.Capabilities()
	if !caps.Chat {
		t.Error("Expected Chat capability from chain")
	}
	if !caps.Models {
		t.Error("Expected Models capability from chain")
	}
}

func TestChainHealth(t *testing.T) {
	ctx := context.Background()

	healthy := NewMock()
	unhealthy := WithError(errors.New("unhealthy"))

	chain, _ := NewChain(healthy, unhealthy)
	defer chain.Close()

	if err := chain.Health(ctx); err != nil {
		t.Errorf("Health check should pass with at least one healthy provider: %v", err)
	}
}

func TestChainHealthAllUnhealthy(t *testing.T) {
	ctx := context.Background()

	p1 := WithError(errors.New("unhealthy 1"))
	p2 := WithError(errors.New("unhealthy 2"))

	chain, _ := NewChain(p1, p2)
	defer chain.Close()

	if err := chain.Health(ctx); err == nil {
		t.Error("Health check should fail when all providers are unhealthy")
	}
}

func TestChainEmpty(t *testing.T) {
	_, err := NewChain()
	if err == nil {
		t.Error("Expected error for empty chain")
	}
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("Expected ErrProviderUnavailable, got %v", err)
	}
}

func TestChainProviders(t *testing.T) {
	p1 := NewMock()
	p2 := NewMock()

	chain, _ := NewChain(p1, p2)
	defer chain.Close()

	providers := chain.Providers()
	if len(providers) != 2 {
		t.Errorf("Expected 2 providers, got %d", len(providers))
	}
}
