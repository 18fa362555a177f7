package main

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the named subcommand against the database configured by DB_PATH.
func run(t *testing.T, name string, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()

	var out bytes.Buffer
	for _, c := range commands(&out) {
		if c.Name() != name {
			continue
		}
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		require.NoError(t, f.Parse(args))
		return c.Execute(context.Background(), f), out.String()
	}

	t.Fatalf("unknown command %s", name)
	return subcommands.ExitFailure, ""
}

func setupDB(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "pt.db"))
	t.Setenv("LOG_LEVEL", "error")
}

func TestMigrateCmd(t *testing.T) {
	setupDB(t)

	status, out := run(t, "migrate", "-status")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "pending\ttrue")

	status, out = run(t, "migrate")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "applied 1 migration(s)\n", out)

	status, out = run(t, "migrate", "-status")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "current\t1")
	assert.Contains(t, out, "pending\tfalse")
}

func TestUserCommands(t *testing.T) {
	setupDB(t)

	status, out := run(t, "useradd", "-username", "alice", "-password", "correct-horse", "-email", "alice@example.com")
	require.Equal(t, subcommands.ExitSuccess, status)
	id := strings.TrimSpace(out)
	assert.Len(t, id, 36)

	t.Run("duplicate username fails", func(t *testing.T) {
		status, _ := run(t, "useradd", "-username", "alice", "-password", "another-one")
		assert.Equal(t, subcommands.ExitFailure, status)
	})

	t.Run("invalid input fails", func(t *testing.T) {
		status, _ := run(t, "useradd", "-username", "bob")
		assert.Equal(t, subcommands.ExitFailure, status)
	})

	t.Run("lists users", func(t *testing.T) {
		status, out := run(t, "users")
		require.Equal(t, subcommands.ExitSuccess, status)
		assert.Equal(t, id+"\talice\talice@example.com\n", out)
	})

	t.Run("checks passwords", func(t *testing.T) {
		status, out := run(t, "checkpw", "-username", "alice", "-password", "correct-horse")
		assert.Equal(t, subcommands.ExitSuccess, status)
		assert.Equal(t, "ok\n", out)

		status, out = run(t, "checkpw", "-username", "alice", "-password", "wrong-horse")
		assert.Equal(t, subcommands.ExitFailure, status)
		assert.Equal(t, "mismatch\n", out)

		status, _ = run(t, "checkpw", "-username", "nobody", "-password", "whatever")
		assert.Equal(t, subcommands.ExitFailure, status)
	})
}

func TestSnapshotCmd(t *testing.T) {
	setupDB(t)

	status, out := run(t, "snapshot", "-date", "2024-05-01")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "recorded 0, skipped 0\n", out)

	status, _ = run(t, "snapshot", "-date", "05/01/2024")
	assert.Equal(t, subcommands.ExitFailure, status)
}
