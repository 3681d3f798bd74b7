// environment.go detects which Docker installation flavor the launcher
// is talking to. The distinction only matters on Windows, where Docker
// Desktop (WSL2 backend) and the legacy Docker Toolbox (VirtualBox VM)
// need different host-networking treatment:
//
//   - Docker Desktop: the container reaches the host through the
//     host.docker.internal host-gateway alias, and published ports are
//     available on localhost.
//   - Docker Toolbox: the daemon lives inside a VirtualBox VM, so
//     published ports must be reached via the VM's IP address.
//
// Detection is best-effort by design — a wrong or failed detection only
// affects the injected host-alias flag and the final access
// instructions, never whether the launch itself succeeds.
package docker

import (
	"context"
	"strings"

	"github.com/archonlabs/archon-launcher/internal/model"
)

// Substring markers searched for (case-insensitively) in the daemon
// info summary. WSL/Microsoft markers identify the Docker Desktop WSL2
// backend; VirtualBox/boot2docker/docker-machine markers identify the
// legacy Toolbox setup.
var (
	desktopMarkers = []string{"wsl", "microsoft"}
	toolboxMarkers = []string{"virtualbox", "boot2docker", "docker machine", "docker-machine"}
)

// DetectEnvironment classifies the Docker installation from the
// platform and the lowercase daemon info summary text.
//
// Non-Windows platforms are always EnvStandard — the Desktop/Toolbox
// split is a Windows-only concern. On Windows, Desktop markers are
// checked before Toolbox markers, and an ambiguous summary defaults to
// EnvDockerDesktop since Toolbox installations are rare today.
func DetectEnvironment(goos, infoSummary string) model.DockerEnvironment {
	if goos != "windows" {
		return model.EnvStandard
	}

	summary := strings.ToLower(infoSummary)

	for _, marker := range desktopMarkers {
		if strings.Contains(summary, marker) {
			return model.EnvDockerDesktop
		}
	}
	for _, marker := range toolboxMarkers {
		if strings.Contains(summary, marker) {
			return model.EnvDockerToolbox
		}
	}

	return model.EnvDockerDesktop
}

// DetectEnvironmentFromDaemon queries the daemon info and classifies
// the installation. On non-Windows platforms the daemon is not queried
// at all. A failed info query on Windows falls back to
// EnvDockerDesktop rather than failing the launch — detection is
// advisory, not a precondition.
func (c *Client) DetectEnvironmentFromDaemon(ctx context.Context, goos string) model.DockerEnvironment {
	if goos != "windows" {
		return model.EnvStandard
	}

	summary, err := c.InfoSummary(ctx)
	if err != nil {
		return model.EnvDockerDesktop
	}
	return DetectEnvironment(goos, summary)
}
