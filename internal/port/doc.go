// Package port implements host-port occupancy probing for the
// archon-launcher preflight checks.
//
// The launcher publishes fixed host ports, so before building anything
// it verifies that nothing on the host is already listening on them.
// Occupancy is detected with a short-lived TCP connect to localhost:
// a successful connect means some process accepted it, so the port is
// in use; the probe connection is closed immediately.
package port
