package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"braindrive.ai/plugindev/internal/core/domain"
	"braindrive.ai/plugindev/internal/core/ports"
)

// Executor implements the CommandExecutor interface on top of os/exec
type Executor struct {
	timeout time.Duration
	env     []string
	stdout  io.Writer
	stderr  io.Writer
	logger  *dkplog.Logger
}

// NewExecutor creates an executor that inherits the process environment and
// forwards command output to stdout and stderr
func NewExecutor(timeout time.Duration, stdout, stderr io.Writer, logger *dkplog.Logger) *Executor {
	return NewExecutorWithOptions(timeout, nil, stdout, stderr, logger)
}

// NewExecutorWithOptions creates an executor with an explicit base environment
func NewExecutorWithOptions(timeout time.Duration, env []string, stdout, stderr io.Writer, logger *dkplog.Logger) *Executor {
	if env == nil {
		env = os.Environ()
	}

	return &Executor{
		timeout: timeout,
		env:     env,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
	}
}

// Run executes cmd and waits for it. Failures are reported as *domain.BuildError.
func (e *Executor) Run(ctx context.Context, cmd domain.Command) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	execCmd := exec.CommandContext(ctx, cmd.Executable(), cmd.Args()...)
	execCmd.Dir = cmd.WorkingDir()
	execCmd.Env = e.buildEnvironment(cmd.Env())
	execCmd.Stdout = e.stdout
	execCmd.Stderr = e.stderr

	e.logger.Debug("Starting command",
		slog.String("command", cmd.String()),
		slog.String("dir", execCmd.Dir))

	started := time.Now()
	err := execCmd.Run()
	if err == nil {
		e.logger.Debug("Command finished", slog.Duration("elapsed", time.Since(started)))
		return nil
	}

	if ctx.Err() != nil {
		return &domain.BuildError{Command: cmd.String(), ExitCode: -1, Err: fmt.Errorf("command aborted: %w", ctx.Err())}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &domain.BuildError{Command: cmd.String(), ExitCode: exitErr.ExitCode(), Err: err}
	}

	return &domain.BuildError{Command: cmd.String(), ExitCode: -1, Err: err}
}

// buildEnvironment combines the base environment with command-specific variables
func (e *Executor) buildEnvironment(cmdEnv map[string]string) []string {
	env := append([]string(nil), e.env...)

	for key, value := range cmdEnv {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	return env
}

var _ ports.CommandExecutor = (*Executor)(nil)
