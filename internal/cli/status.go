// Package cli — status.go implements the "archon-launcher status"
// command.
//
// The status command reports, without changing anything: whether the
// daemon responds, the detected Docker environment flavor, whether the
// Archon container exists and in what state, and which of the required
// host ports are currently occupied. With --json the report is emitted
// as one structured object for machine consumption.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/archonlabs/archon-launcher/internal/config"
	"github.com/archonlabs/archon-launcher/internal/docker"
	"github.com/archonlabs/archon-launcher/internal/model"
	"github.com/archonlabs/archon-launcher/internal/port"
)

// statusReport is the structured form of the status output.
type statusReport struct {
	DaemonReachable bool                    `json:"daemonReachable"`
	Environment     model.DockerEnvironment `json:"environment,omitempty"`
	ContainerName   string                  `json:"containerName"`
	ContainerFound  bool                    `json:"containerFound"`
	ContainerState  string                  `json:"containerState,omitempty"`
	RequiredPorts   []int                   `json:"requiredPorts"`
	PortsInUse      []int                   `json:"portsInUse,omitempty"`
}

// NewStatusCommand creates the "status" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report daemon, container, and port status",
		Long: `Report whether the Docker daemon is reachable, the detected Docker
environment, the state of the archon-container, and which of the
required host ports are currently in use.

Examples:
  archon-launcher status
  archon-launcher status --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context())
		},
	}

	return cmd
}

// runStatus is the main logic function for the status command.
func runStatus(ctx context.Context) error {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to load configuration", err)
	}

	report := statusReport{
		ContainerName: cfg.ContainerName,
		RequiredPorts: cfg.HostPorts(),
	}

	// Port occupancy is host-local and reportable even when the daemon
	// is down.
	report.PortsInUse = port.NewChecker().InUse(cfg.HostPorts())

	cli, err := docker.NewClient()
	if err == nil {
		defer func() { _ = cli.Close() }()

		if pingErr := cli.Ping(ctx); pingErr == nil {
			report.DaemonReachable = true
			// Report the effective flavor: a configured override is what
			// the launch sequence would actually use.
			if cfg.Environment != "" {
				report.Environment = cfg.Environment
			} else {
				report.Environment = cli.DetectEnvironmentFromDaemon(ctx, runtime.GOOS)
			}

			status, findErr := docker.FindByName(ctx, cli, cfg.ContainerName)
			if findErr == nil {
				report.ContainerFound = status.Found
				report.ContainerState = status.State
			}
		}
	}

	printStatusReport(report)
	return nil
}

// printStatusReport outputs the report in text or JSON format.
func printStatusReport(report statusReport) {
	if IsJSONOutput() {
		printStatusReportJSON(os.Stdout, report)
	} else {
		printStatusReportText(os.Stdout, report)
	}
}

// printStatusReportJSON outputs the report as structured JSON.
func printStatusReportJSON(w io.Writer, report statusReport) {
	data, _ := json.MarshalIndent(report, "", "  ")
	fmt.Fprintln(w, string(data))
}

// printStatusReportText outputs the report in human-readable format.
func printStatusReportText(w io.Writer, report statusReport) {
	if report.DaemonReachable {
		fmt.Fprintln(w, "Docker daemon:  reachable")
		fmt.Fprintf(w, "Environment:    %s\n", report.Environment)
	} else {
		fmt.Fprintln(w, "Docker daemon:  not reachable")
	}

	if report.ContainerFound {
		fmt.Fprintf(w, "Container:      %s (%s)\n", report.ContainerName, report.ContainerState)
	} else {
		fmt.Fprintf(w, "Container:      %s (not created)\n", report.ContainerName)
	}

	if len(report.PortsInUse) > 0 {
		fmt.Fprintf(w, "Ports in use:   %v (required: %v)\n", report.PortsInUse, report.RequiredPorts)
	} else {
		fmt.Fprintf(w, "Required ports: %v (all free)\n", report.RequiredPorts)
	}
}
