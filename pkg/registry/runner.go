package registry

import (
	"context"
	"os/exec"
	"strings"
)

// Runner executes external commands. Run waits for completion and reports
// the exit error; RunInput does the same with text piped to stdin; Start
// launches detached and returns once the process is running.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	RunInput(ctx context.Context, input, name string, args ...string) error
	Start(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs real commands via os/exec.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// Run executes the command and waits for it.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// RunInput executes the command with input on stdin and waits for it.
func (ExecRunner) RunInput(ctx context.Context, input, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(input)
	return cmd.Run()
}

// Start launches the command without waiting. The context is not attached:
// launched applications outlive the utterance that opened them.
func (ExecRunner) Start(_ context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
