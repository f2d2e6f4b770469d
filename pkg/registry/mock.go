package registry

import (
	"context"
	"sync"
)

// MockRunner is a scriptable fake runner for tests. Set the *Func fields to
// control behavior; every call is recorded for later assertions. The zero
// value succeeds on everything.
type MockRunner struct {
	RunFunc      func(ctx context.Context, name string, args ...string) error
	RunInputFunc func(ctx context.Context, input, name string, args ...string) error
	StartFunc    func(ctx context.Context, name string, args ...string) error

	mu    sync.Mutex
	calls []RunnerCall
}

// RunnerCall records a single runner invocation. Input is set only for
// RunInput calls.
type RunnerCall struct {
	Method string
	Argv   []string
	Input  string
}

var _ Runner = (*MockRunner)(nil)

// NewMockRunner creates a mock whose commands all succeed.
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

func (m *MockRunner) record(method, name string, args []string) {
	argv := append([]string{name}, args...)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, RunnerCall{Method: method, Argv: argv})
}

// Run implements Runner.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) error {
	m.record("Run", name, args)
	if m.RunFunc != nil {
		return m.RunFunc(ctx, name, args...)
	}
	return nil
}

// RunInput implements Runner.
func (m *MockRunner) RunInput(ctx context.Context, input, name string, args ...string) error {
	argv := append([]string{name}, args...)
	m.mu.Lock()
	m.calls = append(m.calls, RunnerCall{Method: "RunInput", Argv: argv, Input: input})
	m.mu.Unlock()
	if m.RunInputFunc != nil {
		return m.RunInputFunc(ctx, input, name, args...)
	}
	return nil
}

// Start implements Runner.
func (m *MockRunner) Start(ctx context.Context, name string, args ...string) error {
	m.record("Start", name, args)
	if m.StartFunc != nil {
		return m.StartFunc(ctx, name, args...)
	}
	return nil
}

// Calls returns a copy of all recorded invocations.
func (m *MockRunner) Calls() []RunnerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RunnerCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times the named method was invoked.
func (m *MockRunner) CallCount(method string) int {
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

// LastCall returns the most recent invocation, or nil if none were made.
func (m *MockRunner) LastCall() *RunnerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// Reset clears all recorded invocations.
func (m *MockRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
