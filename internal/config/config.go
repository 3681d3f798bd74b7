package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/archonlabs/archon-launcher/internal/model"
)

// Default launch parameters. These mirror the Archon deployment layout:
// the MCP image builds from the mcp/ subdirectory, the main image from
// the project root, and the container publishes the Streamlit UI (8501)
// and MCP (8100) ports one-to-one.
const (
	DefaultMCPDir        = "mcp"
	DefaultMCPImage      = "archon-mcp:latest"
	DefaultImage         = "archon:latest"
	DefaultContainerName = "archon-container"
	DefaultStartupWait   = 2 * time.Second

	// EnvFileName is the environment file forwarded verbatim to
	// `docker run --env-file` when present in the project directory.
	EnvFileName = ".env"
)

// Config file basenames probed in order inside the project directory.
var configFileNames = []string{"archon.jsonc", "archon.yaml"}

// PortMapping is a host-to-container port publication.
type PortMapping struct {
	// Host is the port published on the host machine.
	Host int

	// Container is the port inside the container the host port maps to.
	Container int
}

// String renders the mapping in docker -p syntax ("host:container").
func (p PortMapping) String() string {
	return fmt.Sprintf("%d:%d", p.Host, p.Container)
}

// Config holds the fully resolved launch configuration. All fields are
// populated — loading merges file overrides over the defaults.
type Config struct {
	// BaseDir is the project directory: the main image build context,
	// and the directory searched for .env and config files.
	BaseDir string

	// MCPDir is the MCP image build context, relative to BaseDir.
	MCPDir string

	// MCPImage is the tag applied to the MCP image build.
	MCPImage string

	// Image is the tag applied to the main image build and the image
	// the container runs from.
	Image string

	// ContainerName is the fixed name of the launched container. It is
	// also the name queried when replacing a stale instance.
	ContainerName string

	// Ports are the port publications passed to docker run. The host
	// sides are the required-free ports checked during preflight.
	Ports []PortMapping

	// StartupWait is the fixed pause between the run step and the
	// access instructions, giving the container a moment to start.
	StartupWait time.Duration

	// Environment, when set, forces the Docker environment flavor and
	// skips daemon-based detection. Empty means detect automatically.
	// Useful when the daemon's info text misidentifies the backend.
	Environment model.DockerEnvironment

	// EnvFile is the resolved absolute path of the environment file, or
	// empty when none was found. Populated by DiscoverEnvFile.
	EnvFile string
}

// Default returns the stock configuration rooted at baseDir.
func Default(baseDir string) *Config {
	return &Config{
		BaseDir:       baseDir,
		MCPDir:        DefaultMCPDir,
		MCPImage:      DefaultMCPImage,
		Image:         DefaultImage,
		ContainerName: DefaultContainerName,
		Ports: []PortMapping{
			{Host: 8501, Container: 8501},
			{Host: 8100, Container: 8100},
		},
		StartupWait: DefaultStartupWait,
	}
}

// HostPorts returns the host side of every port mapping, in declaration
// order. These are the ports the preflight check requires to be free.
func (c *Config) HostPorts() []int {
	ports := make([]int, 0, len(c.Ports))
	for _, p := range c.Ports {
		ports = append(ports, p.Host)
	}
	return ports
}

// MCPContextDir returns the absolute MCP build context directory.
func (c *Config) MCPContextDir() string {
	return filepath.Join(c.BaseDir, c.MCPDir)
}

// fileConfig is the raw on-disk override document. Every field is
// optional; zero values leave the corresponding default untouched.
// The same struct serves both JSONC and YAML parsing.
type fileConfig struct {
	// MCPDir overrides the MCP build context subdirectory.
	MCPDir string `json:"mcpDir,omitempty" yaml:"mcpDir"`

	// MCPImage overrides the MCP image tag.
	MCPImage string `json:"mcpImage,omitempty" yaml:"mcpImage"`

	// Image overrides the main image tag.
	Image string `json:"image,omitempty" yaml:"image"`

	// ContainerName overrides the launched container's name.
	ContainerName string `json:"containerName,omitempty" yaml:"containerName"`

	// Ports overrides the port publications, in docker -p syntax
	// ("host:container", e.g. "8501:8501").
	Ports []string `json:"ports,omitempty" yaml:"ports"`

	// StartupWait overrides the post-run pause, as a Go duration
	// string (e.g. "2s", "500ms").
	StartupWait string `json:"startupWait,omitempty" yaml:"startupWait"`

	// Environment forces the Docker environment flavor ("standard",
	// "docker-desktop", or "docker-toolbox"), bypassing detection.
	Environment string `json:"environment,omitempty" yaml:"environment"`
}

// Load resolves the configuration for baseDir. When an archon.jsonc or
// archon.yaml file exists (probed in that order), its non-empty fields
// override the defaults; otherwise the defaults are returned as-is.
//
// A config file that exists but cannot be parsed is an error — silently
// launching with defaults would mask a typo in the override the user
// deliberately wrote.
func Load(baseDir string) (*Config, error) {
	cfg := Default(baseDir)

	for _, name := range configFileNames {
		path := filepath.Join(baseDir, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		var raw fileConfig
		if strings.HasSuffix(name, ".jsonc") {
			// jsonc.ToJSON strips comments and trailing commas, yielding
			// a document the standard library parser accepts.
			if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		} else {
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}

		if err := cfg.apply(&raw); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		return cfg, nil
	}

	return cfg, nil
}

// apply merges non-empty override fields into the configuration.
func (c *Config) apply(raw *fileConfig) error {
	if raw.MCPDir != "" {
		c.MCPDir = raw.MCPDir
	}
	if raw.MCPImage != "" {
		c.MCPImage = raw.MCPImage
	}
	if raw.Image != "" {
		c.Image = raw.Image
	}
	if raw.ContainerName != "" {
		c.ContainerName = raw.ContainerName
	}
	if len(raw.Ports) > 0 {
		ports := make([]PortMapping, 0, len(raw.Ports))
		for _, spec := range raw.Ports {
			mapping, err := ParsePortMapping(spec)
			if err != nil {
				return err
			}
			ports = append(ports, mapping)
		}
		c.Ports = ports
	}
	if raw.StartupWait != "" {
		wait, err := time.ParseDuration(raw.StartupWait)
		if err != nil {
			return fmt.Errorf("invalid startupWait %q: %w", raw.StartupWait, err)
		}
		if wait < 0 {
			return fmt.Errorf("invalid startupWait %q: must not be negative", raw.StartupWait)
		}
		c.StartupWait = wait
	}
	if raw.Environment != "" {
		env, err := model.ParseDockerEnvironment(raw.Environment)
		if err != nil {
			return err
		}
		c.Environment = env
	}
	return nil
}

// ParsePortMapping parses docker -p syntax. Both "host:container" and
// the shorthand "port" (publishing the same port on both sides) are
// accepted.
func ParsePortMapping(spec string) (PortMapping, error) {
	parts := strings.Split(spec, ":")

	switch len(parts) {
	case 1:
		p, err := parsePort(parts[0])
		if err != nil {
			return PortMapping{}, fmt.Errorf("invalid port mapping %q: %w", spec, err)
		}
		return PortMapping{Host: p, Container: p}, nil

	case 2:
		host, err := parsePort(parts[0])
		if err != nil {
			return PortMapping{}, fmt.Errorf("invalid port mapping %q: %w", spec, err)
		}
		container, err := parsePort(parts[1])
		if err != nil {
			return PortMapping{}, fmt.Errorf("invalid port mapping %q: %w", spec, err)
		}
		return PortMapping{Host: host, Container: container}, nil

	default:
		return PortMapping{}, fmt.Errorf("invalid port mapping %q: expected \"host:container\"", spec)
	}
}

// parsePort converts a decimal port string and enforces the valid
// port number range.
func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("port %q is not a number", s)
	}
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("port %d out of range (1-65535)", p)
	}
	return p, nil
}

// DiscoverEnvFile looks for a .env file in the project directory and
// records its absolute path in the configuration. A missing file is
// not an error — the launch simply proceeds without environment-file
// passthrough.
func (c *Config) DiscoverEnvFile() (string, bool) {
	path := filepath.Join(c.BaseDir, EnvFileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.EnvFile = ""
		return "", false
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	c.EnvFile = path
	return path, true
}
