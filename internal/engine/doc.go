// Package engine runs container-engine CLI commands as child processes
// for the archon-launcher.
//
// Image builds and container runs are long-lived commands whose progress
// the user wants to watch, so the runner streams combined stdout/stderr
// to the terminal line-by-line as it arrives while also capturing it for
// error reporting. Each invocation blocks until the process exits and
// produces a model.CommandResult.
//
// The Runner interface exists so the launcher orchestration can be
// tested with a fake that records invocations instead of spawning
// real docker processes.
package engine
