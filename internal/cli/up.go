// Package cli — up.go implements the "archon-launcher up" command.
//
// The up command is the full launch sequence: preflight checks (engine,
// ports), optional .env discovery, both image builds, replacement of a
// stale container, and the detached run. It is also what the bare root
// command executes, so `archon-launcher` and `archon-launcher up` are
// interchangeable.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/archonlabs/archon-launcher/internal/config"
	"github.com/archonlabs/archon-launcher/internal/docker"
	"github.com/archonlabs/archon-launcher/internal/engine"
	"github.com/archonlabs/archon-launcher/internal/launcher"
	"github.com/archonlabs/archon-launcher/internal/model"
	"github.com/archonlabs/archon-launcher/internal/port"
)

// NewUpCommand creates the "up" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewUpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Build both Archon images and start the container",
		Long: `Build the Archon MCP image from the mcp/ subdirectory and the main
Archon image from the project directory, then start the archon-container
with ports 8501 and 8100 published.

Before building, the command verifies that Docker is installed and the
daemon is responding, and that the required host ports are free. A .env
file in the project directory is forwarded to the container via
--env-file when present.

Examples:
  archon-launcher up
  archon-launcher up --dir ~/src/archon`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runUp(cmd.Context())
		},
	}

	return cmd
}

// runUp is the main logic function for the up command (and the bare
// root invocation). It assembles the production dependencies and hands
// control to the launcher.
func runUp(ctx context.Context) error {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to load configuration", err)
	}

	VerboseLog("Project directory: %s", cfg.BaseDir)

	// Connecting to the daemon can itself fail (no socket found) —
	// that is the engine-unavailable case, fatal before anything runs.
	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	VerboseLog("Connected to Docker daemon")

	l := launcher.New(cfg, engine.NewExecRunner(), launcher.NewDaemon(cli), port.NewChecker())
	return l.Run(ctx)
}
