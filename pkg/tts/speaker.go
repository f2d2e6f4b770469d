package tts

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// DefaultQueueSize bounds the number of utterances waiting to be spoken.
const DefaultQueueSize = 32

// Speaker serializes speech through a single worker goroutine. Say never
// blocks: utterances queue up and play in order, and a full queue drops the
// newest utterance rather than stalling the caller.
type Speaker struct {
	engine     Engine
	logger     *slog.Logger
	transcript func(text, lang string)
	queue      chan spokenReq
	done       chan struct{}
	startOnce  sync.Once
}

type spokenReq struct {
	text  string
	lang  string
	flush chan struct{}
}

// SpeakerOption customizes a Speaker.
type SpeakerOption func(*Speaker)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) SpeakerOption {
	return func(s *Speaker) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithQueueSize bounds the pending-utterance queue.
func WithQueueSize(n int) SpeakerOption {
	return func(s *Speaker) {
		if n > 0 {
			s.queue = make(chan spokenReq, n)
		}
	}
}

// WithTranscript registers a callback invoked from the worker goroutine
// before each utterance is spoken, in speech order.
func WithTranscript(fn func(text, lang string)) SpeakerOption {
	return func(s *Speaker) { s.transcript = fn }
}

// NewSpeaker wraps an engine in a serialized speech worker.
func NewSpeaker(engine Engine, opts ...SpeakerOption) *Speaker {
	s := &Speaker{
		engine: engine,
		logger: slog.Default(),
		queue:  make(chan spokenReq, DefaultQueueSize),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the worker goroutine. Later calls are no-ops. The worker
// exits when ctx is canceled; anything still queued is then discarded.
func (s *Speaker) Start(ctx context.Context) {
	s.startOnce.Do(func() { go s.run(ctx) })
}

// Done is closed once the worker has exited.
func (s *Speaker) Done() <-chan struct{} { return s.done }

// Say queues one utterance. Empty text is ignored; an empty lang defaults
// to English.
func (s *Speaker) Say(text, lang string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if lang == "" {
		lang = "en"
	}
	select {
	case s.queue <- spokenReq{text: text, lang: lang}:
	default:
		s.logger.Warn("speech queue full, dropping utterance", "text", text)
	}
}

// Flush blocks until everything queued before it has been spoken, or ctx is
// canceled.
func (s *Speaker) Flush(ctx context.Context) error {
	ch := make(chan struct{})
	select {
	case s.queue <- spokenReq{flush: ch}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Speaker) run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-s.queue:
			if req.flush != nil {
				close(req.flush)
				continue
			}
			s.speak(ctx, req)
		}
	}
}

func (s *Speaker) speak(ctx context.Context, req spokenReq) {
	if s.transcript != nil {
		s.transcript(req.text, req.lang)
	}
	s.logger.Debug("speaking", "lang", req.lang, "text", req.text)
	if err := s.engine.Speak(ctx, req.text, req.lang); err != nil && ctx.Err() == nil {
		s.logger.Error("speech synthesis failed", "error", err)
	}
}
