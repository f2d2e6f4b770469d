package tts

import (
	"context"
	"sync"
)

// MockEngine implements Engine for testing. Speak behavior can be customized
// via SpeakFunc; every call is recorded for verification.
type MockEngine struct {
	// SpeakFunc is called when Speak is invoked. If nil, Speak succeeds.
	SpeakFunc func(ctx context.Context, text, lang string) error

	// CloseFunc is called when Close is invoked. If nil, Close returns nil.
	CloseFunc func() error

	mu    sync.Mutex
	calls []SpokenLine
}

// SpokenLine records one Speak invocation.
type SpokenLine struct {
	Text string
	Lang string
}

var _ Engine = (*MockEngine)(nil)

// NewMockEngine creates a mock engine whose Speak always succeeds.
func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

// Speak records the call and delegates to SpeakFunc.
func (m *MockEngine) Speak(ctx context.Context, text, lang string) error {
	m.mu.Lock()
	m.calls = append(m.calls, SpokenLine{Text: text, Lang: lang})
	m.mu.Unlock()

	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text, lang)
	}
	return nil
}

// Name implements Engine.
func (m *MockEngine) Name() string { return "mock" }

// Close implements Engine.
func (m *MockEngine) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns all recorded Speak invocations in order.
func (m *MockEngine) Calls() []SpokenLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SpokenLine, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Speak was invoked.
func (m *MockEngine) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastCall returns the most recent Speak invocation, or nil if none.
func (m *MockEngine) LastCall() *SpokenLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// Reset clears all recorded calls.
func (m *MockEngine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
