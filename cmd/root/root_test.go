package root_test

import (
	"testing"

	"fjacquet/cfo-copilot/cmd/root"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "cfo-copilot", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "finance questions")
	assert.Contains(t, root.Cmd.Long, "revenue vs budget")
	assert.Contains(t, root.Cmd.Long, "cash runway")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_Run(t *testing.T) {
	cmd := &cobra.Command{}

	assert.NotPanics(t, func() {
		root.Cmd.Run(cmd, []string{})
	})
}

func TestInit_RegistersFlags(t *testing.T) {
	root.Init()

	logLevelFlag := root.Cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, logLevelFlag)
	assert.Equal(t, "l", logLevelFlag.Shorthand)

	dataFlag := root.Cmd.PersistentFlags().Lookup("data")
	require.NotNil(t, dataFlag)
	assert.Equal(t, "d", dataFlag.Shorthand)

	jsonFlag := root.Cmd.PersistentFlags().Lookup("json")
	require.NotNil(t, jsonFlag)
	assert.Equal(t, "j", jsonFlag.Shorthand)
	assert.Equal(t, "false", jsonFlag.DefValue)
}

func TestCommonFlags_Structure(t *testing.T) {
	flags := root.CommonFlags{
		LogLevel: "debug",
		Data:     "fixtures",
		JSON:     true,
	}

	assert.Equal(t, "debug", flags.LogLevel)
	assert.Equal(t, "fixtures", flags.Data)
	assert.True(t, flags.JSON)
}

func TestGetLogrusAdapter(t *testing.T) {
	adapter := root.GetLogrusAdapter()
	assert.NotNil(t, adapter)
}

func TestGetConfig(t *testing.T) {
	assert.NotPanics(t, func() {
		root.GetConfig()
	})
}

func TestGetContainer_WithoutDataset(t *testing.T) {
	original := root.AppContainer
	defer func() { root.AppContainer = original }()

	// No fixtures directory exists here, so initialization fails and the
	// getter reports that by returning nil rather than panicking.
	root.AppContainer = nil
	assert.NotPanics(t, func() {
		root.GetContainer()
	})
}
