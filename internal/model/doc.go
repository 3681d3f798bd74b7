// Package model defines the domain types and value objects for the
// archon-launcher CLI.
//
// This package contains pure data structures with no external dependencies.
// The launcher keeps no persistent state of its own — the only artifacts a
// run leaves behind are the built images and the named container inside the
// Docker engine — so everything here is a transient, per-run value.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
