// output.go holds the lipgloss styles and the user-facing progress
// rendering for the launch sequence. lipgloss degrades to plain text
// automatically when stdout is not a terminal, so the same code serves
// interactive and piped runs.
package launcher

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/archonlabs/archon-launcher/internal/model"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CBA6F7"))

	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))

	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8"))
)

// section prints a styled step header, matching the "=== title ==="
// sections users see between the streamed docker output blocks.
func (l *Launcher) section(title string) {
	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, sectionStyle.Render("=== "+title+" ==="))
}

// printAccessInstructions tells the user where the launched container
// is reachable and how to stop it. Docker Toolbox publishes ports on
// the VM's address rather than localhost, so its instructions differ.
func (l *Launcher) printAccessInstructions(env model.DockerEnvironment) {
	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, successStyle.Render("=== Archon is now running! ==="))

	uiPort := 8501
	if len(l.cfg.Ports) > 0 {
		uiPort = l.cfg.Ports[0].Host
	}

	if env == model.EnvDockerToolbox {
		fmt.Fprintln(l.out, "-> Using Docker Toolbox:")
		fmt.Fprintln(l.out, "   The UI is published on the Docker VM, not localhost.")
		fmt.Fprintln(l.out, "   Run 'docker-machine ip default' to get the VM's IP, then open:")
		fmt.Fprintf(l.out, "   http://<docker-machine-ip>:%d\n", uiPort)
	} else {
		fmt.Fprintf(l.out, "-> Access the Streamlit UI at: http://localhost:%d\n", uiPort)
	}

	fmt.Fprintln(l.out, "-> The MCP container is ready to use — see the MCP tab in the UI.")
	fmt.Fprintln(l.out)
	fmt.Fprintf(l.out, "To stop Archon, run: docker stop %s && docker rm %s\n",
		l.cfg.ContainerName, l.cfg.ContainerName)
}
