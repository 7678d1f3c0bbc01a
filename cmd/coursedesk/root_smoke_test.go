package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTUIWithoutTokenReturnsError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("COURSEDESK_API_TOKEN", "")
	t.Chdir(dir)

	err := runTUI()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coursedesk login")
}

func TestRootHelpListsSubcommands(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	for _, name := range []string{"login", "list", "delete"} {
		assert.Contains(t, out.String(), name)
	}
}

func TestRootRejectsUnknownSubcommand(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"nope"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
