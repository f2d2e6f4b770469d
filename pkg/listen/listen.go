// Package listen captures one utterance of recognized speech at a time and
// tags it with a language. Recognition itself happens in an external
// recognizer process; this package wraps it behind a small interface with a
// mock for tests.
package listen

import (
	"context"
	"io"
	"strings"
	"time"
)

// Language tags attached to every utterance.
const (
	LangEnglish = "en"
	LangTamil   = "ta"
)

// Utterance is one captured phrase. Silence and recognition failures are
// represented as empty text with the English tag, never as errors.
type Utterance struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// Empty reports whether the utterance carries any speech.
func (u Utterance) Empty() bool {
	return strings.TrimSpace(u.Text) == ""
}

// Listener captures utterances. Listen blocks until speech is recognized,
// the timeout elapses waiting for speech to start, or the phrase limit cuts
// the capture off.
type Listener interface {
	Listen(ctx context.Context, timeout, phraseLimit time.Duration) (Utterance, error)

	// Name returns the backend name (e.g., "exec", "mock").
	Name() string

	io.Closer
}

// tamilWords is the closed marker list for language tagging. Romanized
// Tamil shares the recognizer's Latin output, so tagging is keyword-based.
var tamilWords = []string{
	"thorakku", "thoraku", "muddu", "mudu", "pannu", "podu",
	"vanakkam", "sollunga", "kekkala", "kandupidikka", "mudiyala",
}

// DetectLanguage tags text as Tamil when any romanized Tamil marker appears,
// English otherwise.
func DetectLanguage(text string) string {
	if text == "" {
		return LangEnglish
	}
	lower := strings.ToLower(text)
	for _, word := range tamilWords {
		if strings.Contains(lower, word) {
			return LangTamil
		}
	}
	return LangEnglish
}
