package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := rootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "seed"}, names)
}

func TestSeedCmd_UnknownPreset(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"seed", "--preset", "huge"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown preset "huge"`)
}

func TestSeedCmd_MissingPresetFile(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"seed", "--file", t.TempDir() + "/missing.yaml"})
	assert.Error(t, cmd.Execute())
}
