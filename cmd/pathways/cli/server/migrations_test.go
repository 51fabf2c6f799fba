package server

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMigrations(t *testing.T, args ...string) string {
	t.Helper()

	cmd := NewMigrationsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestMigrationsLifecycle(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("metadata.sqlite.path", filepath.Join(t.TempDir(), "pathways.db"))

	out := runMigrations(t, "status")
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("pending")))

	out = runMigrations(t, "up", "--to", "1")
	assert.Contains(t, out, "Schema is at version 1")

	out = runMigrations(t, "status")
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("pending")))

	runMigrations(t, "up")
	out = runMigrations(t, "down")
	assert.Contains(t, out, "Reverted 2 (Index inquiries by submission time)")
}

func TestMigrationsRequireStore(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("metadata.type", "none")

	cmd := NewMigrationsCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"status"})
	assert.ErrorContains(t, cmd.Execute(), "no schema to migrate")
}
