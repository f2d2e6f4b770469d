package tts

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Backend identifies an engine implementation.
type Backend string

const (
	// BackendAuto picks exec when the platform synthesizer is on PATH,
	// mock otherwise.
	BackendAuto Backend = "auto"
	BackendExec Backend = "exec"
	BackendMock Backend = "mock"
)

// Config holds engine construction options.
type Config struct {
	// Backend selects the implementation.
	Backend Backend
}

// DefaultConfig returns a config that auto-selects the backend.
func DefaultConfig() Config {
	return Config{Backend: BackendAuto}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendExec, BackendMock:
		return nil
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
}

// New creates a speech engine for the given configuration.
func New(cfg Config, logger *slog.Logger) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	backend := cfg.Backend
	if backend == BackendAuto {
		if synthesizerAvailable(runtime.GOOS) {
			backend = BackendExec
		} else {
			backend = BackendMock
		}
	}

	logger.Info("creating speech engine", "backend", backend)

	switch backend {
	case BackendExec:
		return NewExecEngine(logger), nil
	case BackendMock:
		return NewMockEngine(), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

func synthesizerAvailable(goos string) bool {
	_, err := exec.LookPath(speakBinary(goos))
	return err == nil
}
