package model

import (
	"fmt"
	"strings"
)

// DockerEnvironment represents the flavor of Docker installation the
// launcher is talking to. It is derived once per run from daemon info
// text and only influences host-alias flag injection and the final
// access instructions — never the correctness of the launch sequence.
type DockerEnvironment string

const (
	// EnvStandard is any non-Windows Docker installation. Containers
	// published on localhost are reachable at localhost.
	EnvStandard DockerEnvironment = "standard"

	// EnvDockerDesktop is Docker Desktop on Windows (WSL2 backend).
	// Containers need the host.docker.internal host-gateway alias to
	// reach services running on the host.
	EnvDockerDesktop DockerEnvironment = "docker-desktop"

	// EnvDockerToolbox is the legacy Docker Toolbox setup on Windows,
	// where the daemon runs inside a VirtualBox VM. Published ports are
	// reachable at the VM's IP address, not localhost.
	EnvDockerToolbox DockerEnvironment = "docker-toolbox"
)

// String returns the string representation of DockerEnvironment.
// This satisfies fmt.Stringer for CLI output and logging.
func (e DockerEnvironment) String() string {
	return string(e)
}

// IsValid checks whether the DockerEnvironment value is one of the
// predefined flavors.
func (e DockerEnvironment) IsValid() bool {
	switch e {
	case EnvStandard, EnvDockerDesktop, EnvDockerToolbox:
		return true
	default:
		return false
	}
}

// ParseDockerEnvironment converts a string to a DockerEnvironment.
// Returns an error if the string does not match any known flavor.
func ParseDockerEnvironment(s string) (DockerEnvironment, error) {
	env := DockerEnvironment(strings.ToLower(s))
	if !env.IsValid() {
		return "", fmt.Errorf("invalid docker environment: %q (valid: standard, docker-desktop, docker-toolbox)", s)
	}
	return env, nil
}

// CommandResult captures the outcome of a single external-process
// invocation: the process exit code and its combined stdout/stderr
// output. Each result is consumed immediately after the command
// finishes to decide whether the launch sequence continues.
type CommandResult struct {
	// Code is the process exit code. Zero means success. The engine
	// runner reports 1 for processes that failed before producing an
	// exit code (e.g. the binary was not found).
	Code int

	// Output is the combined stdout/stderr text the command produced.
	// The engine runner streams output to the terminal as it arrives;
	// this field holds the same text for error reporting.
	Output string
}

// Success reports whether the command exited with code zero.
func (r CommandResult) Success() bool {
	return r.Code == 0
}

// ExitCode defines the CLI process exit codes. The launcher contract
// is deliberately coarse: zero on success, one on any fatal failure.
// Scripts wrapping the launcher only need to distinguish those two.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates a fatal failure: engine unavailable, port
	// conflict, build failure, or run failure.
	ExitFailure ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
