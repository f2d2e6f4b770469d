package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// Speaking pace in words per minute, slower for Tamil.
const (
	rateEnglish = 180
	rateTamil   = 160
)

// ExecEngine speaks through the platform synthesizer: espeak-ng on Linux,
// say on macOS, the SAPI synthesizer via powershell on Windows.
type ExecEngine struct {
	goos   string
	logger *slog.Logger
	run    func(ctx context.Context, argv []string) error
}

var _ Engine = (*ExecEngine)(nil)

// NewExecEngine creates an engine for the current platform.
func NewExecEngine(logger *slog.Logger) *ExecEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecEngine{goos: runtime.GOOS, logger: logger, run: runArgv}
}

func runArgv(ctx context.Context, argv []string) error {
	return exec.CommandContext(ctx, argv[0], argv[1:]...).Run()
}

// Speak implements Engine. Empty text is a no-op.
func (e *ExecEngine) Speak(ctx context.Context, text, lang string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return e.run(ctx, speakArgv(e.goos, text, lang))
}

// Name implements Engine.
func (e *ExecEngine) Name() string { return "exec" }

// Close implements Engine.
func (e *ExecEngine) Close() error { return nil }

// speakArgv builds the synthesizer command line for one utterance.
func speakArgv(goos, text, lang string) []string {
	rate := rateEnglish
	if lang == langTamil {
		rate = rateTamil
	}

	switch goos {
	case "windows":
		// SAPI rates run -10..10: 1 tracks the 180 wpm English pace,
		// 0 the 160 wpm Tamil pace.
		sapiRate := 1
		if lang == langTamil {
			sapiRate = 0
		}
		script := fmt.Sprintf(
			"Add-Type -AssemblyName System.Speech; $s = New-Object System.Speech.Synthesis.SpeechSynthesizer; $s.Rate = %d; $s.Speak('%s')",
			sapiRate, strings.ReplaceAll(text, "'", "''"),
		)
		return []string{"powershell", "-NoProfile", "-Command", script}
	case "darwin":
		return []string{"say", "-r", strconv.Itoa(rate), text}
	default:
		return []string{"espeak-ng", "-s", strconv.Itoa(rate), text}
	}
}

// speakBinary is the synthesizer executable the exec engine needs on PATH.
func speakBinary(goos string) string {
	switch goos {
	case "windows":
		return "powershell"
	case "darwin":
		return "say"
	default:
		return "espeak-ng"
	}
}
