package listen

import (
	"context"
	"sync"
	"time"
)

// MockListener replays queued utterances for tests. Once the queue drains it
// returns silence, matching a quiet room.
type MockListener struct {
	mu    sync.Mutex
	queue []Utterance
	calls int
}

var _ Listener = (*MockListener)(nil)

// NewMockListener seeds the queue with the given utterances.
func NewMockListener(utterances ...Utterance) *MockListener {
	return &MockListener{queue: append([]Utterance(nil), utterances...)}
}

// Enqueue appends an utterance to the replay queue.
func (m *MockListener) Enqueue(u Utterance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, u)
}

// Listen pops the next queued utterance. Utterances queued without a language
// are tagged on the way out.
func (m *MockListener) Listen(ctx context.Context, timeout, phraseLimit time.Duration) (Utterance, error) {
	if err := ctx.Err(); err != nil {
		return Utterance{Lang: LangEnglish}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if len(m.queue) == 0 {
		return Utterance{Lang: LangEnglish}, nil
	}
	u := m.queue[0]
	m.queue = m.queue[1:]
	if u.Lang == "" {
		u.Lang = DetectLanguage(u.Text)
	}
	return u, nil
}

// Calls reports how many times Listen has been invoked.
func (m *MockListener) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Name implements Listener.
func (m *MockListener) Name() string { return "mock" }

// Close implements Listener.
func (m *MockListener) Close() error { return nil }
