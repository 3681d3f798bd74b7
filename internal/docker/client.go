package docker

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/docker/docker/client"

	"github.com/archonlabs/archon-launcher/internal/model"
)

// defaultPingTimeout is the maximum duration to wait for a Docker
// daemon response during a Ping operation. 5 seconds is generous enough
// for most environments, including Docker Desktop on macOS which can be
// slower than native Linux Docker.
const defaultPingTimeout = 5 * time.Second

// windowsDockerHost is the Docker Desktop Named Pipe address on
// Windows. The pipe path is fixed by Docker Desktop and cannot be
// customized via filesystem location.
const windowsDockerHost = "npipe:////./pipe/docker_engine"

// Client wraps the Docker Engine SDK client. It handles automatic
// Docker socket detection across platforms (Linux, macOS, Windows) and
// provides the daemon queries the launcher needs: reachability,
// environment introspection, and named-container lifecycle.
//
// Usage:
//
//	c, err := docker.NewClient()
//	if err != nil { /* handle */ }
//	defer c.Close()
//	if err := c.Ping(ctx); err != nil { /* Docker not running */ }
type Client struct {
	// inner is the underlying Docker SDK client. Wrapped rather than
	// embedded to control the exposed API surface.
	inner *client.Client
}

// NewClient creates a new Docker client with automatic socket detection.
//
// The detection strategy follows this priority order:
//  1. DOCKER_HOST environment variable (if set, used as-is)
//  2. Platform-specific default socket paths:
//     - Linux: /var/run/docker.sock
//     - macOS: /var/run/docker.sock, then ~/.docker/run/docker.sock
//     - Windows: npipe:////./pipe/docker_engine (Docker Named Pipe)
//
// Returns a model.CLIError if no Docker socket is found or the client
// cannot be created.
func NewClient() (*Client, error) {
	// An explicit DOCKER_HOST wins unconditionally; the Docker SDK
	// handles the connection string parsing.
	dockerHost := os.Getenv("DOCKER_HOST")
	if dockerHost != "" {
		return newClientWithHost(dockerHost)
	}

	host, err := detectDockerHost(runtime.GOOS)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitFailure,
			"Docker socket not found",
			err,
		)
	}

	return newClientWithHost(host)
}

// newClientWithHost creates a Docker client connected to the specified
// host. The host parameter should be a valid Docker connection string
// (e.g., "unix:///var/run/docker.sock" or "npipe:////./pipe/docker_engine").
func newClientWithHost(host string) (*Client, error) {
	// WithAPIVersionNegotiation ensures compatibility across daemon
	// versions without hardcoding a specific API version.
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitFailure,
			fmt.Sprintf("failed to create Docker client for host %q", host),
			err,
		)
	}

	return &Client{inner: c}, nil
}

// detectDockerHost determines the Docker host address for the given
// platform. On Linux and macOS it probes known socket paths and returns
// the first one that exists. Existence is checked rather than
// connectivity, because the Ping method handles daemon verification
// separately.
func detectDockerHost(goos string) (string, error) {
	switch goos {
	case "linux":
		return detectUnixSocket([]string{
			"/var/run/docker.sock",
		})

	case "darwin":
		// macOS has two possible socket locations: the standard path
		// (Docker Desktop creates a symlink there) and the per-user
		// path used by newer Docker Desktop versions.
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return detectUnixSocket([]string{
				"/var/run/docker.sock",
			})
		}
		return detectUnixSocket([]string{
			"/var/run/docker.sock",
			homeDir + "/.docker/run/docker.sock",
		})

	case "windows":
		// Windows uses a Named Pipe at a fixed address. Named pipes
		// cannot be probed with os.Stat and the net package does not
		// dial them, so the address is returned as-is and Ping decides
		// whether a daemon is actually listening — consistent with the
		// existence-not-connectivity approach used for Unix sockets.
		return windowsDockerHost, nil

	default:
		return "", fmt.Errorf("unsupported platform: %s", goos)
	}
}

// detectUnixSocket probes a list of Unix socket paths and returns the
// Docker host URI for the first socket that exists on the filesystem.
// Paths are checked in order, most-preferred first.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf(
		"Docker socket not found at any of: %v — is Docker running?",
		paths,
	)
}

// Ping verifies that the Docker daemon is reachable and responsive.
// It sends a lightweight ping request to the Docker API and waits
// up to defaultPingTimeout for a response.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	_, err := c.inner.Ping(pingCtx)
	if err != nil {
		return model.WrapCLIError(
			model.ExitFailure,
			"Docker daemon is not responding — is Docker running?",
			err,
		)
	}
	return nil
}

// InfoSummary queries the daemon's system info and flattens the fields
// that identify the installation flavor into one lowercase string.
// Environment detection searches this text for backend markers
// ("wsl", "microsoft", "virtualbox", ...), mirroring what `docker info`
// output exposes.
func (c *Client) InfoSummary(ctx context.Context) (string, error) {
	info, err := c.inner.Info(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to query Docker daemon info: %w", err)
	}

	fields := []string{
		info.Name,
		info.ServerVersion,
		info.OperatingSystem,
		info.OSVersion,
		info.OSType,
		info.KernelVersion,
	}
	// Daemon labels carry provisioning hints; docker-machine sets
	// "provider=virtualbox" on Toolbox VMs.
	fields = append(fields, info.Labels...)

	return strings.ToLower(strings.Join(fields, " ")), nil
}

// Close releases all resources held by the Docker client. Safe to call
// multiple times; typically deferred right after NewClient().
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

// Inner returns the underlying Docker SDK client for operations not
// exposed through the wrapper. Callers should prefer Client methods
// when one exists.
func (c *Client) Inner() *client.Client {
	return c.inner
}
