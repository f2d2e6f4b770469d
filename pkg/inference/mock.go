package inference

import (
	"context"
	"sync"
)

// Mock is a scriptable fake provider for tests. Set the *Func fields to
// control behavior; every call is recorded for later assertions.
type Mock struct {
	ChatFunc       func(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	ListModelsFunc func(ctx context.Context) ([]string, error)
	HealthFunc     func(ctx context.Context) error
	CloseFunc      func() error

	// CapabilitiesOverride replaces the derived capabilities when set.
	CapabilitiesOverride *Capabilities

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a single call to the mock.
type MockCall struct {
	Method string
	Args   interface{}
}

var _ Provider = (*Mock)(nil)

// NewMock creates a mock with working defaults.
func NewMock() *Mock {
	return &Mock{
		ChatFunc: func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			return &ChatResponse{
				Message:      NewAssistantMessage("Mock response"),
				FinishReason: "stop",
				Model:        "mock",
			}, nil
		},
		ListModelsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"phi3:mini", "llama3:instruct", "mistral:latest"}, nil
		},
	}
}

// WithError creates a mock where every operation fails with err.
func WithError(err error) *Mock {
	return &Mock{
		ChatFunc: func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			return nil, err
		},
		ListModelsFunc: func(ctx context.Context) ([]string, error) {
			return nil, err
		},
		HealthFunc: func(ctx context.Context) error {
			return err
		},
	}
}

func (m *Mock) record(method string, args interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Args: args})
}

// Chat implements Provider.
func (m *Mock) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	m.record("Chat", req)
	if m.ChatFunc == nil {
		return nil, ErrProviderUnavailable
	}
	return m.ChatFunc(ctx, req)
}

// ListModels implements Provider.
func (m *Mock) ListModels(ctx context.Context) ([]string, error) {
	m.record("ListModels", nil)
	if m.ListModelsFunc == nil {
		return nil, ErrProviderUnavailable
	}
	return m.ListModelsFunc(ctx)
}

// Capabilities implements Provider. Unless overridden, capabilities follow
// which *Func fields are set.
func (m *Mock) Capabilities() Capabilities {
	if m.CapabilitiesOverride != nil {
		return *m.CapabilitiesOverride
	}
	return Capabilities{
		Chat:   m.ChatFunc != nil,
		Models: m.ListModelsFunc != nil,
	}
}

// Health implements Provider.
func (m *Mock) Health(ctx context.Context) error {
	m.record("Health", nil)
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close implements Provider.
func (m *Mock) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns a copy of all recorded calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times the named method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, call := range m.calls {
		if call.Method == method {
			n++
		}
	}
	return n
}

// LastCall returns the most recent call, or nil if none were made.
func (m *Mock) LastCall() *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// Reset clears all recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
