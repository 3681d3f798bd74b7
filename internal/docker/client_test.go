package docker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDetectDockerHost_Windows verifies that the Windows Named Pipe
// address is returned directly, without any reachability probing. Named
// pipes cannot be dialed through the net package, so detection must not
// attempt it — Ping is what decides whether a daemon is listening.
func TestDetectDockerHost_Windows(t *testing.T) {
	host, err := detectDockerHost("windows")

	require.NoError(t, err)
	assert.Equal(t, "npipe:////./pipe/docker_engine", host)
}

// TestDetectDockerHost_UnsupportedPlatform verifies that unknown
// platforms produce an error rather than a bogus host address.
func TestDetectDockerHost_UnsupportedPlatform(t *testing.T) {
	_, err := detectDockerHost("plan9")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported platform")
}

// TestDetectUnixSocket verifies ordered probing of socket paths.
func TestDetectUnixSocket(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "docker.sock")
	require.NoError(t, os.WriteFile(existing, nil, 0o644))

	t.Run("first existing path wins", func(t *testing.T) {
		host, err := detectUnixSocket([]string{
			filepath.Join(dir, "missing.sock"),
			existing,
		})

		require.NoError(t, err)
		assert.Equal(t, "unix://"+existing, host)
	})

	t.Run("no path exists", func(t *testing.T) {
		_, err := detectUnixSocket([]string{
			filepath.Join(dir, "missing.sock"),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Docker socket not found")
	})
}
