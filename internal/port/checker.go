package port

import (
	"fmt"
	"net"
	"time"
)

// defaultProbeTimeout bounds each connect attempt. A free port refuses
// the connection almost instantly; the timeout only matters when a
// firewall silently drops packets to the probed port.
const defaultProbeTimeout = 500 * time.Millisecond

// Checker probes host ports on localhost to determine whether they are
// already occupied by a listener.
//
// Defined as a struct rather than bare functions so the probe target
// host and timeout stay configurable and the Checker is injectable as
// a dependency, which keeps the launcher orchestration testable.
type Checker struct {
	// host is the probe target. Always "localhost" in production; tests
	// use it to probe their own listeners.
	host string

	// timeout bounds a single connect attempt.
	timeout time.Duration
}

// NewChecker creates a Checker probing localhost with the default
// timeout.
func NewChecker() *Checker {
	return &Checker{host: "localhost", timeout: defaultProbeTimeout}
}

// IsInUse reports whether a TCP listener is accepting connections on
// the given port. A successful connect means the port is occupied; the
// probe connection is closed immediately after the check.
func (c *Checker) IsInUse(port int) bool {
	addr := net.JoinHostPort(c.host, fmt.Sprintf("%d", port))

	conn, err := net.DialTimeout("tcp", addr, c.timeout)
	if err != nil {
		// Connection refused (or timed out): nothing is listening.
		return false
	}
	_ = conn.Close()
	return true
}

// InUse returns the subset of the given ports that are currently
// occupied, preserving the input order so error messages list ports
// the same way the configuration declares them.
func (c *Checker) InUse(ports []int) []int {
	var used []int
	for _, p := range ports {
		if c.IsInUse(p) {
			used = append(used, p)
		}
	}
	return used
}
