package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archonlabs/archon-launcher/internal/model"
)

// TestPrintStatusReportText covers the three report dimensions: daemon
// reachability, container presence, and port occupancy.
func TestPrintStatusReportText(t *testing.T) {
	tests := []struct {
		name        string
		report      statusReport
		wantLines   []string
		unwantLines []string
	}{
		{
			name: "daemon up, container running, ports busy",
			report: statusReport{
				DaemonReachable: true,
				Environment:     model.EnvStandard,
				ContainerName:   "archon-container",
				ContainerFound:  true,
				ContainerState:  "running",
				RequiredPorts:   []int{8501, 8100},
				PortsInUse:      []int{8501, 8100},
			},
			wantLines: []string{
				"Docker daemon:  reachable",
				"Environment:    standard",
				"Container:      archon-container (running)",
				"Ports in use:   [8501 8100] (required: [8501 8100])",
			},
		},
		{
			name: "daemon down, nothing running",
			report: statusReport{
				DaemonReachable: false,
				ContainerName:   "archon-container",
				RequiredPorts:   []int{8501, 8100},
			},
			wantLines: []string{
				"Docker daemon:  not reachable",
				"Container:      archon-container (not created)",
				"Required ports: [8501 8100] (all free)",
			},
			unwantLines: []string{
				"Environment:",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printStatusReportText(&buf, tt.report)

			out := buf.String()
			for _, line := range tt.wantLines {
				assert.Contains(t, out, line)
			}
			for _, line := range tt.unwantLines {
				assert.NotContains(t, out, line)
			}
		})
	}
}

// TestPrintStatusReportJSON verifies the structured report parses and
// that empty optional fields are omitted when the daemon is down.
func TestPrintStatusReportJSON(t *testing.T) {
	t.Run("full report", func(t *testing.T) {
		var buf bytes.Buffer
		printStatusReportJSON(&buf, statusReport{
			DaemonReachable: true,
			Environment:     model.EnvDockerDesktop,
			ContainerName:   "archon-container",
			ContainerFound:  true,
			ContainerState:  "running",
			RequiredPorts:   []int{8501, 8100},
			PortsInUse:      []int{8501},
		})

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

		assert.Equal(t, true, result["daemonReachable"])
		assert.Equal(t, "docker-desktop", result["environment"])
		assert.Equal(t, "archon-container", result["containerName"])
		assert.Equal(t, "running", result["containerState"])
		assert.Equal(t, []interface{}{float64(8501)}, result["portsInUse"])
	})

	t.Run("daemon down omits optional fields", func(t *testing.T) {
		var buf bytes.Buffer
		printStatusReportJSON(&buf, statusReport{
			DaemonReachable: false,
			ContainerName:   "archon-container",
			RequiredPorts:   []int{8501, 8100},
		})

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

		assert.Equal(t, false, result["daemonReachable"])
		assert.NotContains(t, result, "environment")
		assert.NotContains(t, result, "containerState")
		assert.NotContains(t, result, "portsInUse")
	})
}
