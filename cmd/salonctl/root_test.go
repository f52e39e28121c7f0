package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRequireDatabaseURL(t *testing.T) {
	t.Setenv("DB_URL", "")

	for _, args := range [][]string{
		{"migrate"},
		{"seed-categories"},
		{"salons", "list"},
		{"appointments", "list", "--salon", "studio"},
	} {
		cmd := rootCommand()
		cmd.SetArgs(append(args, "--database-url", ""))
		cmd.SetOut(&bytes.Buffer{})

		err := cmd.Execute()
		require.Error(t, err, "%v", args)
		assert.Contains(t, err.Error(), "DB_URL")
	}
}

func TestRootListsSubcommands(t *testing.T) {
	cmd := rootCommand()
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"migrate", "seed-categories", "salons", "appointments"} {
		assert.True(t, names[want], want)
	}
}
