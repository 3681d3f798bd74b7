package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archonlabs/archon-launcher/internal/model"
)

// writeFile is a test helper that creates a file with the given content
// inside dir.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad_Defaults verifies that a directory without any config file
// yields the stock configuration.
func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.BaseDir)
	assert.Equal(t, "mcp", cfg.MCPDir)
	assert.Equal(t, "archon-mcp:latest", cfg.MCPImage)
	assert.Equal(t, "archon:latest", cfg.Image)
	assert.Equal(t, "archon-container", cfg.ContainerName)
	assert.Equal(t, []PortMapping{{8501, 8501}, {8100, 8100}}, cfg.Ports)
	assert.Equal(t, 2*time.Second, cfg.StartupWait)
	assert.Empty(t, cfg.EnvFile)
}

// TestLoad_JSONCOverrides verifies that archon.jsonc overrides are
// applied, including comment stripping, and that omitted fields keep
// their defaults.
func TestLoad_JSONCOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "archon.jsonc", `{
	// local fork publishes the UI on a different host port
	"ports": ["9501:8501", "8100:8100"],
	"containerName": "archon-dev",
	"startupWait": "500ms",
}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []PortMapping{{9501, 8501}, {8100, 8100}}, cfg.Ports)
	assert.Equal(t, "archon-dev", cfg.ContainerName)
	assert.Equal(t, 500*time.Millisecond, cfg.StartupWait)
	// Untouched fields fall back to defaults.
	assert.Equal(t, "archon:latest", cfg.Image)
	assert.Equal(t, "archon-mcp:latest", cfg.MCPImage)
}

// TestLoad_YAMLOverrides verifies the YAML config path.
func TestLoad_YAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "archon.yaml", `
image: archon:nightly
mcpImage: archon-mcp:nightly
mcpDir: services/mcp
ports:
  - "8501"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "archon:nightly", cfg.Image)
	assert.Equal(t, "archon-mcp:nightly", cfg.MCPImage)
	assert.Equal(t, "services/mcp", cfg.MCPDir)
	// Shorthand "8501" publishes the same port on both sides.
	assert.Equal(t, []PortMapping{{8501, 8501}}, cfg.Ports)
}

// TestLoad_JSONCTakesPrecedence verifies the probe order when both
// config files exist.
func TestLoad_JSONCTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "archon.jsonc", `{"containerName": "from-jsonc"}`)
	writeFile(t, dir, "archon.yaml", `containerName: from-yaml`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-jsonc", cfg.ContainerName)
}

// TestLoad_InvalidFile verifies that a malformed config file is an
// error rather than a silent fallback to defaults.
func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "archon.yaml", "ports: [\"not-a-port\"]")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config file")
}

// TestLoad_EnvironmentOverride verifies that a configured environment
// flavor is parsed and normalized.
func TestLoad_EnvironmentOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "archon.yaml", `environment: Docker-Desktop`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, model.EnvDockerDesktop, cfg.Environment)
}

// TestLoad_InvalidEnvironment verifies that an unknown environment
// flavor is rejected instead of being carried as-is.
func TestLoad_InvalidEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "archon.jsonc", `{"environment": "podman"}`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid docker environment")
}

// TestLoad_EnvironmentDefaultEmpty verifies that without an override
// the flavor stays unset, leaving detection to the daemon.
func TestLoad_EnvironmentDefaultEmpty(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Environment)
}

// TestLoad_InvalidStartupWait verifies duration validation.
func TestLoad_InvalidStartupWait(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "archon.jsonc", `{"startupWait": "soon"}`)

	_, err := Load(dir)
	assert.Error(t, err)
}

// TestParsePortMapping exercises both accepted syntaxes and the
// rejection cases.
func TestParsePortMapping(t *testing.T) {
	tests := []struct {
		spec    string
		want    PortMapping
		wantErr bool
	}{
		{spec: "8501:8501", want: PortMapping{8501, 8501}},
		{spec: "9501:8501", want: PortMapping{9501, 8501}},
		{spec: "8100", want: PortMapping{8100, 8100}},
		{spec: " 8100 ", want: PortMapping{8100, 8100}},
		{spec: "0:8100", wantErr: true},
		{spec: "8100:70000", wantErr: true},
		{spec: "a:b", wantErr: true},
		{spec: "1:2:3", wantErr: true},
		{spec: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParsePortMapping(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestPortMapping_String verifies docker -p rendering.
func TestPortMapping_String(t *testing.T) {
	assert.Equal(t, "8501:8501", PortMapping{8501, 8501}.String())
	assert.Equal(t, "9501:8501", PortMapping{9501, 8501}.String())
}

// TestHostPorts verifies extraction of the preflight port list.
func TestHostPorts(t *testing.T) {
	cfg := Default(t.TempDir())
	assert.Equal(t, []int{8501, 8100}, cfg.HostPorts())
}

// TestDiscoverEnvFile_Present verifies that an existing .env file is
// resolved to an absolute path and recorded on the config.
func TestDiscoverEnvFile_Present(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "OPENAI_API_KEY=sk-test\n")

	cfg := Default(dir)
	path, found := cfg.DiscoverEnvFile()

	require.True(t, found)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, path, cfg.EnvFile)
	assert.Equal(t, ".env", filepath.Base(path))
}

// TestDiscoverEnvFile_Absent verifies the non-fatal missing-file path.
func TestDiscoverEnvFile_Absent(t *testing.T) {
	cfg := Default(t.TempDir())

	path, found := cfg.DiscoverEnvFile()
	assert.False(t, found)
	assert.Empty(t, path)
	assert.Empty(t, cfg.EnvFile)
}

// TestDiscoverEnvFile_Directory verifies that a directory named .env
// does not count as an environment file.
func TestDiscoverEnvFile_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o755))

	cfg := Default(dir)
	_, found := cfg.DiscoverEnvFile()
	assert.False(t, found)
}

// TestMCPContextDir verifies build-context path resolution.
func TestMCPContextDir(t *testing.T) {
	dir := t.TempDir()
	cfg := Default(dir)
	assert.Equal(t, filepath.Join(dir, "mcp"), cfg.MCPContextDir())
}
