package server

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	config "github.com/mwantia/pathways/internal/config/server"
)

func TestGenerateWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	cmd := NewConfigCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"generate", "--output", dir})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	var cfg config.BaseServerConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Empty(t, cfg.Inquiry.Publish.Brokers)
	cfg.Inquiry.Publish.Brokers = nil
	assert.Equal(t, config.GetServerDefault(), cfg)

	// A second run leaves the file alone.
	out.Reset()
	cmd.SetArgs([]string{"generate", "--output", dir})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Skipping")
}

func TestGenerateToStdout(t *testing.T) {
	cmd := NewConfigCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"generate", "--stdout"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "gpa_tolerance: 0.2")
	assert.Contains(t, out.String(), "topic: pathways.inquiries")
}

func TestDescribeConfig(t *testing.T) {
	cfg := config.GetServerDefault()
	cfg.Inquiry.Publish.Brokers = []string{"kafka:9092"}

	var out bytes.Buffer
	require.NoError(t, describeConfig(&out, &cfg))
	assert.Equal(t, "Configuration is valid (http :8080, metadata sqlite, publish pathways.inquiries)\n", out.String())
}
