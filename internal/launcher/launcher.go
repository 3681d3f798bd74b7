package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/archonlabs/archon-launcher/internal/config"
	"github.com/archonlabs/archon-launcher/internal/docker"
	"github.com/archonlabs/archon-launcher/internal/engine"
	"github.com/archonlabs/archon-launcher/internal/model"
)

// dockerBinary is the container-engine CLI the launcher shells out to
// for builds and runs.
const dockerBinary = "docker"

// hostGatewayAlias is the --add-host value that lets the container
// resolve host.docker.internal to the host machine's address. Injected
// only for Docker Desktop installations.
const hostGatewayAlias = "host.docker.internal:host-gateway"

// Daemon abstracts the Docker SDK operations the launch sequence needs.
// The production implementation wraps *docker.Client; tests substitute
// a fake that records calls.
type Daemon interface {
	// Ping verifies the daemon is reachable and responsive.
	Ping(ctx context.Context) error

	// DetectEnvironment classifies the installation flavor for the
	// given platform. Never fails; ambiguity resolves to a default.
	DetectEnvironment(ctx context.Context, goos string) model.DockerEnvironment

	// FindContainer looks up a container by exact name, including
	// stopped ones.
	FindContainer(ctx context.Context, name string) (docker.ContainerStatus, error)

	// StopContainer stops a container by ID.
	StopContainer(ctx context.Context, containerID string) error

	// RemoveContainer removes a container by ID.
	RemoveContainer(ctx context.Context, containerID string, force bool) error
}

// PortChecker reports which of the given host ports are occupied.
type PortChecker interface {
	InUse(ports []int) []int
}

// sdkDaemon adapts *docker.Client to the Daemon interface.
type sdkDaemon struct {
	cli *docker.Client
}

// NewDaemon wraps a Docker SDK client as a launcher Daemon.
func NewDaemon(cli *docker.Client) Daemon {
	return &sdkDaemon{cli: cli}
}

func (d *sdkDaemon) Ping(ctx context.Context) error {
	return d.cli.Ping(ctx)
}

func (d *sdkDaemon) DetectEnvironment(ctx context.Context, goos string) model.DockerEnvironment {
	return d.cli.DetectEnvironmentFromDaemon(ctx, goos)
}

func (d *sdkDaemon) FindContainer(ctx context.Context, name string) (docker.ContainerStatus, error) {
	return docker.FindByName(ctx, d.cli, name)
}

func (d *sdkDaemon) StopContainer(ctx context.Context, containerID string) error {
	return docker.StopContainer(ctx, d.cli, containerID)
}

func (d *sdkDaemon) RemoveContainer(ctx context.Context, containerID string, force bool) error {
	return docker.RemoveContainer(ctx, d.cli, containerID, force)
}

// Launcher runs the full build-and-launch sequence against injected
// engine, daemon, and port-checker dependencies.
type Launcher struct {
	cfg    *config.Config
	runner engine.Runner
	daemon Daemon
	ports  PortChecker

	// out receives all user-facing progress output.
	out io.Writer

	// goos is the platform used for environment detection. Overridden
	// in tests to exercise the Windows-only branches.
	goos string

	// sleep implements the post-run startup pause. Overridden in tests
	// to avoid real waiting.
	sleep func(time.Duration)
}

// New creates a Launcher with production defaults: output to stdout,
// the compile-time platform, and a real clock.
func New(cfg *config.Config, runner engine.Runner, daemon Daemon, ports PortChecker) *Launcher {
	return &Launcher{
		cfg:    cfg,
		runner: runner,
		daemon: daemon,
		ports:  ports,
		out:    os.Stdout,
		goos:   runtime.GOOS,
		sleep:  time.Sleep,
	}
}

// Run executes the launch sequence. It returns nil on success and a
// *model.CLIError describing the first fatal failure otherwise.
func (l *Launcher) Run(ctx context.Context) error {
	// Step 1: engine check. The version query proves the binary exists;
	// the ping proves the daemon is up. Both are hard preconditions.
	if err := l.checkEngine(ctx); err != nil {
		return err
	}

	// Step 2: environment detection. Advisory only — it picks the
	// host-alias flag and the final instructions, never aborts. A
	// configured override wins over daemon introspection.
	var env model.DockerEnvironment
	if l.cfg.Environment != "" {
		env = l.cfg.Environment
		fmt.Fprintf(l.out, "Using configured Docker environment: %s\n", env)
	} else {
		env = l.daemon.DetectEnvironment(ctx, l.goos)
		fmt.Fprintf(l.out, "Detected Docker environment: %s\n", env)
	}

	// Step 3: required ports must be free before any build starts, so
	// a doomed launch fails in seconds instead of after minutes of
	// image building.
	if used := l.ports.InUse(l.cfg.HostPorts()); len(used) > 0 {
		return model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("the following ports are already in use: %v — stop the services using them or adjust the port mappings", used))
	}

	// Step 4: optional .env passthrough.
	if path, found := l.cfg.DiscoverEnvFile(); found {
		fmt.Fprintf(l.out, "Using environment file: %s\n", path)
	} else {
		fmt.Fprintln(l.out, "No .env file found. Continuing without environment variables.")
	}

	// Steps 5 and 6: image builds, MCP first.
	l.section("Building Archon MCP image")
	if err := l.build(ctx, l.cfg.MCPContextDir(), l.cfg.MCPImage); err != nil {
		return err
	}

	l.section("Building main Archon image")
	if err := l.build(ctx, l.cfg.BaseDir, l.cfg.Image); err != nil {
		return err
	}

	// Step 7: best-effort replacement of a stale instance. Errors here
	// are swallowed; if the name is genuinely still taken, the run step
	// reports it.
	l.replaceStaleContainer(ctx)

	// Step 8: start the container.
	l.section("Starting Archon container")
	if err := l.runContainer(ctx, env); err != nil {
		return err
	}

	// Step 9: give the container a moment to come up, then tell the
	// user where to find it.
	l.sleep(l.cfg.StartupWait)
	l.printAccessInstructions(env)

	return nil
}

// checkEngine verifies the docker binary exists and the daemon responds.
func (l *Launcher) checkEngine(ctx context.Context) error {
	result, err := l.runner.Capture(ctx, dockerBinary, "--version")
	if err != nil {
		return model.WrapCLIError(model.ExitFailure,
			"Docker is not installed or not in PATH", err)
	}
	if !result.Success() {
		return model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("docker --version failed: %s", strings.TrimSpace(result.Output)))
	}
	if v := strings.TrimSpace(result.Output); v != "" {
		fmt.Fprintln(l.out, v)
	}

	if err := l.daemon.Ping(ctx); err != nil {
		return model.WrapCLIError(model.ExitFailure,
			"Docker is not running — start Docker Desktop or the Docker service", err)
	}
	return nil
}

// build runs `docker build -t tag .` with the given context directory
// as the working directory, streaming build output as it arrives.
func (l *Launcher) build(ctx context.Context, contextDir, tag string) error {
	fmt.Fprintf(l.out, "Running: %s build -t %s .\n", dockerBinary, tag)

	result, err := l.runner.Run(ctx, contextDir, dockerBinary, "build", "-t", tag, ".")
	if err != nil {
		return model.WrapCLIError(model.ExitFailure,
			fmt.Sprintf("failed to build image %s", tag), err)
	}
	if !result.Success() {
		return model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("building image %s failed with exit code %d", tag, result.Code))
	}
	return nil
}

// replaceStaleContainer stops and removes an existing container with
// the configured name so the new instance can claim it. Every failure
// in this step is swallowed — the behavior is documented best-effort,
// and a name that remains taken surfaces in the run step anyway.
func (l *Launcher) replaceStaleContainer(ctx context.Context) {
	status, err := l.daemon.FindContainer(ctx, l.cfg.ContainerName)
	if err != nil || !status.Found {
		return
	}

	l.section("Stopping existing Archon container")
	if status.Running() {
		_ = l.daemon.StopContainer(ctx, status.ID)
	}
	_ = l.daemon.RemoveContainer(ctx, status.ID, false)
}

// runContainer starts the detached container via `docker run`.
func (l *Launcher) runContainer(ctx context.Context, env model.DockerEnvironment) error {
	args := buildRunArgs(l.cfg, env)
	fmt.Fprintf(l.out, "Running: %s %s\n", dockerBinary, strings.Join(args, " "))

	if env == model.EnvDockerToolbox {
		fmt.Fprintln(l.out, noteStyle.Render(
			"Note: with Docker Toolbox you may need the VM's IP address instead of localhost."))
	}

	result, err := l.runner.Run(ctx, l.cfg.BaseDir, dockerBinary, args...)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure,
			"failed to start Archon container", err)
	}
	if !result.Success() {
		return model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("starting Archon container failed with exit code %d", result.Code))
	}
	return nil
}

// buildRunArgs assembles the docker run argument list: detached mode,
// the fixed container name, one -p flag per port mapping, the
// host-gateway alias for Docker Desktop, the env-file passthrough when
// one was discovered, and finally the image.
func buildRunArgs(cfg *config.Config, env model.DockerEnvironment) []string {
	args := []string{"run", "-d", "--name", cfg.ContainerName}

	for _, p := range cfg.Ports {
		args = append(args, "-p", p.String())
	}

	if env == model.EnvDockerDesktop {
		args = append(args, "--add-host", hostGatewayAlias)
	}

	if cfg.EnvFile != "" {
		args = append(args, "--env-file", cfg.EnvFile)
	}

	args = append(args, cfg.Image)
	return args
}
