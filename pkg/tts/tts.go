// Package tts renders assistant replies as speech. Synthesis runs through an
// external per-OS synthesizer (espeak-ng, say, SAPI via powershell) behind an
// Engine interface, and a Speaker worker serializes utterances so replies
// never talk over each other and callers never wait for audio.
package tts

import (
	"context"
	"io"
)

// Engine synthesizes and plays one utterance, blocking until playback ends.
type Engine interface {
	// Speak renders text aloud. The lang tag selects the speaking pace:
	// "ta" uses the slower Tamil pace, anything else the English pace.
	Speak(ctx context.Context, text, lang string) error

	// Name returns the backend name (e.g., "exec", "mock").
	Name() string

	io.Closer
}

// langTamil mirrors the utterance language tag used across the assistant.
const langTamil = "ta"
