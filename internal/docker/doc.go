// Package docker provides Docker Engine API wrappers for the
// archon-launcher CLI.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - Daemon reachability checks (Ping) used by the engine preflight
//   - Daemon info introspection, from which the Windows Docker flavor
//     (Docker Desktop vs. Docker Toolbox) is detected
//   - Lookup, stop, and removal of the named Archon container when a
//     stale instance must be replaced
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
