// container.go implements the named-container operations the launcher
// needs: finding the Archon container by its fixed name, and stopping
// and removing a stale instance before a new one is started.
package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/archonlabs/archon-launcher/internal/model"
)

// ContainerStatus describes the state of the named Archon container as
// reported by the Docker daemon.
type ContainerStatus struct {
	// Found reports whether a container with the exact name exists
	// (running or not).
	Found bool

	// ID is the container's full identifier. Empty when not found.
	ID string

	// State is Docker's short state string ("running", "exited",
	// "created", ...). Empty when not found.
	State string
}

// Running reports whether the container exists and is currently running.
func (s ContainerStatus) Running() bool {
	return s.Found && s.State == "running"
}

// FindByName looks up a container by its exact name. Stopped containers
// are included, because a stale exited instance still blocks reuse of
// the name and must be removed before `docker run`.
func FindByName(ctx context.Context, cli *Client, name string) (ContainerStatus, error) {
	// The name filter narrows the listing server-side, but it matches
	// substrings ("archon-container" also matches "archon-container-2"),
	// so results are compared against the exact name afterwards.
	filterArgs := filters.NewArgs(
		filters.Arg("name", name),
	)

	containers, err := cli.Inner().ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return ContainerStatus{}, model.WrapCLIError(
			model.ExitFailure,
			"failed to list Docker containers",
			err,
		)
	}

	if c, ok := matchExactName(containers, name); ok {
		return ContainerStatus{Found: true, ID: c.ID, State: c.State}, nil
	}
	return ContainerStatus{}, nil
}

// matchExactName returns the container whose name equals name exactly.
// The Docker API reports names with a leading "/" prefix, which is
// stripped before comparison.
func matchExactName(containers []types.Container, name string) (types.Container, bool) {
	for _, c := range containers {
		for _, n := range c.Names {
			if strings.TrimPrefix(n, "/") == name {
				return c, true
			}
		}
	}
	return types.Container{}, false
}

// StopContainer stops a running container by its ID. Docker sends the
// main process a SIGTERM and escalates to SIGKILL after the daemon's
// default timeout (typically 10 seconds).
func StopContainer(ctx context.Context, cli *Client, containerID string) error {
	// StopOptions with a nil Timeout uses Docker's default grace period.
	err := cli.Inner().ContainerStop(ctx, containerID, container.StopOptions{})
	if err != nil {
		return model.WrapCLIError(
			model.ExitFailure,
			fmt.Sprintf("failed to stop container %q", containerID),
			err,
		)
	}
	return nil
}

// RemoveContainer removes a container by its ID. The container must be
// stopped first unless force is true, in which case Docker kills it
// before removal.
func RemoveContainer(ctx context.Context, cli *Client, containerID string, force bool) error {
	err := cli.Inner().ContainerRemove(ctx, containerID, container.RemoveOptions{
		Force: force,
	})
	if err != nil {
		return model.WrapCLIError(
			model.ExitFailure,
			fmt.Sprintf("failed to remove container %q", containerID),
			err,
		)
	}
	return nil
}
