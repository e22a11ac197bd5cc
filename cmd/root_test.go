package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"normalize", "campaign", "market", "push", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "leadlist", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestNormalizeCommand_Flags(t *testing.T) {
	flag := normalizeCmd.Flags().Lookup("source")
	require.NotNil(t, flag, "normalize command should have --source flag")

	format := normalizeCmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "csv", format.DefValue)

	conc := normalizeCmd.Flags().Lookup("concurrency")
	require.NotNil(t, conc)
	assert.Equal(t, "4", conc.DefValue)
}

func TestCampaignCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range campaignCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"save", "get", "list", "runs"} {
		assert.True(t, names[name], "expected campaign subcommand %q not found", name)
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestMarketCommand_Flags(t *testing.T) {
	flag := marketCmd.Flags().Lookup("out")
	require.NotNil(t, flag)
	assert.Equal(t, "-", flag.DefValue)
}
