package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRootCommand_Subcommands verifies that all subcommands are
// registered on the root command.
func TestNewRootCommand_Subcommands(t *testing.T) {
	rootCmd := NewRootCommand()

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["up"], "up subcommand should be registered")
	assert.True(t, names["down"], "down subcommand should be registered")
	assert.True(t, names["status"], "status subcommand should be registered")
}

// TestNewRootCommand_PersistentFlags verifies the global flags every
// subcommand inherits.
func TestNewRootCommand_PersistentFlags(t *testing.T) {
	rootCmd := NewRootCommand()

	jsonFlag := rootCmd.PersistentFlags().Lookup("json")
	require.NotNil(t, jsonFlag)
	assert.Equal(t, "false", jsonFlag.DefValue)

	verboseFlag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)

	dirFlag := rootCmd.PersistentFlags().Lookup("dir")
	require.NotNil(t, dirFlag)
	assert.Equal(t, ".", dirFlag.DefValue)
}

// TestNewRootCommand_Behavior verifies the error-handling posture:
// usage and error printing are handled by Execute, not cobra.
func TestNewRootCommand_Behavior(t *testing.T) {
	rootCmd := NewRootCommand()

	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
	assert.NotNil(t, rootCmd.RunE, "bare invocation must run the launch sequence")
}
