package listen

import (
	"errors"
	"fmt"
	"log/slog"
)

// Backend identifies a listener implementation.
type Backend string

const (
	// BackendAuto picks exec when a recognizer command is configured,
	// mock otherwise.
	BackendAuto Backend = "auto"
	BackendExec Backend = "exec"
	BackendMock Backend = "mock"
)

// Config holds listener construction options.
type Config struct {
	// Backend selects the implementation.
	Backend Backend

	// Command is the recognizer argv. The adapter appends --timeout and
	// --phrase-limit in whole seconds and reads one transcript line from
	// stdout.
	Command []string
}

// DefaultConfig returns a config that auto-selects the backend.
func DefaultConfig() Config {
	return Config{Backend: BackendAuto}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendMock:
		return nil
	case BackendExec:
		if len(c.Command) == 0 {
			return errors.New("exec backend requires a recognizer command")
		}
		return nil
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
}

// New creates a listener for the given configuration.
func New(cfg Config, logger *slog.Logger) (Listener, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	backend := cfg.Backend
	if backend == BackendAuto {
		if len(cfg.Command) > 0 {
			backend = BackendExec
		} else {
			backend = BackendMock
		}
	}

	logger.Info("creating listener", "backend", backend)

	switch backend {
	case BackendExec:
		return NewExecListener(cfg.Command, logger), nil
	case BackendMock:
		return NewMockListener(), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}
