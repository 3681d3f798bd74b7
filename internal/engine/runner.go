package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/archonlabs/archon-launcher/internal/model"
)

// ErrBinaryNotFound indicates the requested binary does not exist in
// PATH. Callers use this to distinguish "docker is not installed" from
// "docker ran and failed".
var ErrBinaryNotFound = errors.New("binary not found in PATH")

// Runner executes an external command and reports its outcome.
//
// Implementations must block until the process exits. The returned
// error is non-nil only when the process could not be spawned at all
// (binary missing, context cancelled before start); a process that
// starts and exits non-zero is reported via CommandResult.Code with a
// nil error, because a non-zero exit is an expected outcome the caller
// inspects.
type Runner interface {
	// Run executes name with args, streaming output to the terminal.
	// When dir is non-empty it becomes the process working directory
	// (docker resolves the build context relative to it).
	Run(ctx context.Context, dir string, name string, args ...string) (model.CommandResult, error)

	// Capture executes name with args and returns the combined output
	// in the result without streaming it. Used for short introspection
	// queries whose output belongs in the result, not on screen.
	Capture(ctx context.Context, name string, args ...string) (model.CommandResult, error)
}

// ExecRunner is the production Runner backed by os/exec. Output is
// streamed to Stdout/Stderr as the process produces it and captured
// into the CommandResult at the same time.
type ExecRunner struct {
	// Stdout and Stderr receive the child process output streams.
	// When nil they default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner that streams to the current
// process's stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run implements Runner. The child inherits the current environment.
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (model.CommandResult, error) {
	// Resolve the binary up front so a missing engine is reported as a
	// spawn failure rather than surfacing later as an opaque exec error.
	if _, err := exec.LookPath(name); err != nil {
		return model.CommandResult{Code: 1}, fmt.Errorf("%w: %s", ErrBinaryNotFound, name)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Tee both streams into one buffer: the terminal sees output as it
	// arrives, and the buffer preserves it for the CommandResult.
	var buf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &buf)
	cmd.Stderr = io.MultiWriter(stderr, &buf)

	err := cmd.Run()
	result := model.CommandResult{Code: 0, Output: buf.String()}
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			// The process ran and exited non-zero. Not a spawn error.
			result.Code = exitErr.ExitCode()
			return result, nil
		case ctx.Err() != nil:
			result.Code = 1
			return result, ctx.Err()
		default:
			result.Code = 1
			return result, fmt.Errorf("failed to run %s: %w", name, err)
		}
	}

	return result, nil
}

// Capture runs a command and returns its stdout without streaming to
// the terminal. Used for short introspection queries (e.g.
// "docker --version") whose output belongs in the result, not on
// screen.
func (r *ExecRunner) Capture(ctx context.Context, name string, args ...string) (model.CommandResult, error) {
	if _, err := exec.LookPath(name); err != nil {
		return model.CommandResult{Code: 1}, fmt.Errorf("%w: %s", ErrBinaryNotFound, name)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()

	out, err := cmd.CombinedOutput()
	result := model.CommandResult{Code: 0, Output: string(out)}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.Code = exitErr.ExitCode()
			return result, nil
		}
		result.Code = 1
		return result, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return result, nil
}
