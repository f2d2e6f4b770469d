package listen

import (
	"context"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// execGrace covers recognizer startup and network latency on top of the
// caller's capture window.
const execGrace = 5 * time.Second

// ExecListener shells out to an external recognizer for each capture. The
// recognizer prints one transcript line to stdout; anything it writes to
// stderr is ignored. Recognition problems are silence, not errors.
type ExecListener struct {
	command []string
	logger  *slog.Logger
}

var _ Listener = (*ExecListener)(nil)

// NewExecListener wraps a recognizer command.
func NewExecListener(command []string, logger *slog.Logger) *ExecListener {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecListener{command: command, logger: logger}
}

// Listen runs the recognizer once and tags the transcript's language.
func (l *ExecListener) Listen(ctx context.Context, timeout, phraseLimit time.Duration) (Utterance, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout+phraseLimit+execGrace)
	defer cancel()

	argv := buildArgv(l.command, timeout, phraseLimit)
	out, err := exec.CommandContext(cctx, argv[0], argv[1:]...).Output()
	if err != nil {
		if ctx.Err() != nil {
			return Utterance{Lang: LangEnglish}, ctx.Err()
		}
		l.logger.Debug("recognizer produced no speech", "error", err)
		return Utterance{Lang: LangEnglish}, nil
	}

	text := strings.TrimSpace(firstLine(string(out)))
	if len(text) <= 1 {
		return Utterance{Lang: LangEnglish}, nil
	}

	u := Utterance{Text: text, Lang: DetectLanguage(text)}
	l.logger.Debug("captured utterance", "text", u.Text, "lang", u.Lang)
	return u, nil
}

// Name implements Listener.
func (l *ExecListener) Name() string { return "exec" }

// Close implements Listener.
func (l *ExecListener) Close() error { return nil }

func buildArgv(command []string, timeout, phraseLimit time.Duration) []string {
	argv := make([]string, 0, len(command)+4)
	argv = append(argv, command...)
	argv = append(argv,
		"--timeout", strconv.Itoa(int(timeout.Seconds())),
		"--phrase-limit", strconv.Itoa(int(phraseLimit.Seconds())),
	)
	return argv
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
