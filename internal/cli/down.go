// Package cli — down.go implements the "archon-launcher down" command.
//
// The down command stops and removes the Archon container — the
// scripted form of the stop instructions the launch sequence prints.
// Unlike the best-effort stale-instance replacement inside "up",
// failures here are reported: the user explicitly asked for the
// teardown, so a container that cannot be stopped is an error worth
// seeing.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/archonlabs/archon-launcher/internal/config"
	"github.com/archonlabs/archon-launcher/internal/docker"
	"github.com/archonlabs/archon-launcher/internal/model"
)

// NewDownCommand creates the "down" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Stop and remove the Archon container",
		Long: `Stop the archon-container and remove it. The built images are left in
place, so a subsequent "up" only rebuilds what changed.

If no Archon container exists, the command reports that and exits
successfully.

Examples:
  archon-launcher down
  archon-launcher down --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDown(cmd.Context())
		},
	}

	return cmd
}

// runDown is the main logic function for the down command.
func runDown(ctx context.Context) error {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to load configuration", err)
	}

	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		return err
	}

	status, err := docker.FindByName(ctx, cli, cfg.ContainerName)
	if err != nil {
		return err
	}

	if !status.Found {
		printDownResult(cfg.ContainerName, "absent")
		return nil
	}

	VerboseLog("Found container %s (%s, %s)", cfg.ContainerName, status.ID[:12], status.State)

	if status.Running() {
		if err := docker.StopContainer(ctx, cli, status.ID); err != nil {
			return err
		}
	}
	if err := docker.RemoveContainer(ctx, cli, status.ID, false); err != nil {
		return err
	}

	printDownResult(cfg.ContainerName, "removed")
	return nil
}

// printDownResult outputs the down command result in text or JSON
// format. action is "removed" or "absent".
func printDownResult(containerName, action string) {
	if IsJSONOutput() {
		printDownResultJSON(os.Stdout, containerName, action)
	} else {
		printDownResultText(os.Stdout, containerName, action)
	}
}

// printDownResultJSON outputs the down result as structured JSON.
func printDownResultJSON(w io.Writer, containerName, action string) {
	result := map[string]interface{}{
		"container": containerName,
		"action":    action,
	}
	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(w, string(data))
}

// printDownResultText outputs the down result in human-readable format.
func printDownResultText(w io.Writer, containerName, action string) {
	if action == "absent" {
		fmt.Fprintf(w, "No container named %q exists — nothing to stop.\n", containerName)
	} else {
		fmt.Fprintf(w, "Stopped and removed container %q.\n", containerName)
	}
}
