package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := NewRootCommand(VersionInfo{Version: "0.0.1", Commit: "test"})
	root.AddCommand(&cobra.Command{Use: "noop", RunE: func(*cobra.Command, []string) error { return nil }})
	root.SetArgs(append([]string{"noop"}, args...))
	require.NoError(t, root.Execute())
}

func TestConfigFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("match:\n  gpa_tolerance: 0.3\nlog:\n  level: warn\n"), 0o644))
	t.Setenv("PATHWAYS_SESSION_IDLE_TIMEOUT", "15m")

	runRoot(t, "--config", path, "--log-format", "json", "--no-color")

	assert.Equal(t, 0.3, viper.GetFloat64("match.gpa_tolerance"))
	assert.Equal(t, "15m", viper.GetString("session.idle_timeout"))
	assert.Equal(t, "warn", viper.GetString("log.level"))
	assert.Equal(t, "json", viper.GetString("log.format"))
	assert.False(t, viper.GetBool("log.color"))
}

func TestLogLevelFlagOverridesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	runRoot(t, "--config", path, "--log-level", "debug")

	assert.Equal(t, "debug", viper.GetString("log.level"))
}

func TestMissingExplicitConfigFails(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Error(t, initConfig(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestEnvFileNextToConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PATHWAYS_HTTP_ADDRESS=:9999\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PATHWAYS_HTTP_ADDRESS") })

	runRoot(t, "--config", path)

	assert.Equal(t, ":9999", viper.GetString("http.address"))
}
