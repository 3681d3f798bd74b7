// Package launcher implements the Archon build-and-launch sequence.
//
// A launch is a strictly sequential pipeline of preflight checks and
// container-engine invocations:
//
//  1. Engine check (docker binary present, daemon responding)
//  2. Docker environment detection (Windows Desktop/Toolbox split)
//  3. Required-port availability check
//  4. Optional .env discovery
//  5. Build of the MCP image
//  6. Build of the main image
//  7. Best-effort replacement of a stale named container
//  8. docker run with fixed port publications
//  9. Startup pause and access instructions
//
// Every step except environment detection and stale-instance
// replacement is a hard precondition for the next: the first failure
// aborts the run with a fatal error. There are no retries and no
// rollback — images built before a later failure stay built.
//
// The Launcher depends on small interfaces (engine.Runner, Daemon,
// PortChecker) so the whole sequence is exercised in tests with fakes
// that record invocations instead of touching a real Docker engine.
package launcher
