package web

import (
	"encoding/json"
	"sync"

	"github.com/plutovoice/go-pluto/pkg/protocol"
)

// TranscriptLimit is how many transcript lines the daemon keeps.
const TranscriptLimit = 500

// TranscriptEntry is one stored transcript line with its original timestamp.
type TranscriptEntry struct {
	protocol.LogData
	Timestamp int64 `json:"ts"`
}

// Message converts the stored entry back into its wire envelope, keeping the
// timestamp it was first broadcast with.
func (e TranscriptEntry) Message() (*protocol.Message, error) {
	data, err := json.Marshal(e.LogData)
	if err != nil {
		return nil, err
	}
	return &protocol.Message{
		Type:      protocol.TypeLog,
		Timestamp: e.Timestamp,
		Data:      data,
	}, nil
}

// Transcript is a bounded in-memory ring of transcript lines. Oldest lines
// fall off once the limit is reached.
type Transcript struct {
	mu      sync.RWMutex
	entries []TranscriptEntry
	limit   int
}

// NewTranscript creates a transcript buffer holding at most limit lines.
func NewTranscript(limit int) *Transcript {
	if limit <= 0 {
		limit = TranscriptLimit
	}
	return &Transcript{
		entries: make([]TranscriptEntry, 0, limit),
		limit:   limit,
	}
}

// Add appends one line, evicting the oldest when full.
func (t *Transcript) Add(entry TranscriptEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, entry)
	if len(t.entries) > t.limit {
		t.entries = t.entries[1:]
	}
}

// Entries returns a copy of the stored lines, oldest first.
func (t *Transcript) Entries() []TranscriptEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]TranscriptEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of stored lines.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
