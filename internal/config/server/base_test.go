package server

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 0.2, cfg.Match.GPATolerance)
	assert.Equal(t, 100.0, cfg.Match.ScoreTolerance)
	assert.Equal(t, 2*time.Hour, cfg.Session.IdleTimeout)
	assert.Equal(t, "sqlite", cfg.Metadata.Type)
	assert.False(t, cfg.Inquiry.Publish.Enabled())
	assert.Equal(t, "pathways.inquiries", cfg.Inquiry.Publish.Topic)
}

func TestLoadServerConfigOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("match.gpa_tolerance", 0.3)
	viper.Set("session.idle_timeout", "15m")
	viper.Set("metadata.type", "none")
	viper.Set("inquiry.publish.brokers", []string{"kafka-1:9092", "kafka-2:9092"})

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.Match.GPATolerance)
	assert.Equal(t, 15*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, "none", cfg.Metadata.Type)
	assert.True(t, cfg.Inquiry.Publish.Enabled())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Inquiry.Publish.Brokers)
}

func TestLoadServerConfigRejectsZeroSweepInterval(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("session.sweep_interval", "0s")

	_, err := LoadServerConfig()
	assert.ErrorContains(t, err, "session.sweep_interval")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*BaseServerConfig){
		"bad shutdown timeout": func(c *BaseServerConfig) { c.ShutdownTimeout = "soon" },
		"empty address":        func(c *BaseServerConfig) { c.HTTP.Address = "" },
		"unknown log format":   func(c *BaseServerConfig) { c.Log.Format = "logfmt" },
		"negative tolerance":   func(c *BaseServerConfig) { c.Match.GPATolerance = -0.1 },
		"zero idle timeout":    func(c *BaseServerConfig) { c.Session.IdleTimeout = 0 },
		"zero sweep interval":  func(c *BaseServerConfig) { c.Session.SweepInterval = 0 },
		"negative sweep":       func(c *BaseServerConfig) { c.Session.SweepInterval = -time.Minute },
		"unknown metadata":     func(c *BaseServerConfig) { c.Metadata.Type = "mysql" },
		"missing sqlite path":  func(c *BaseServerConfig) { c.Metadata.SQLite.Path = "" },
		"missing postgres dsn": func(c *BaseServerConfig) { c.Metadata.Type = "postgres" },
		"brokers without topic": func(c *BaseServerConfig) {
			c.Inquiry.Publish.Brokers = []string{"localhost:9092"}
			c.Inquiry.Publish.Topic = ""
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := GetServerDefault()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := GetServerDefault()
	assert.NoError(t, cfg.Validate())
}
