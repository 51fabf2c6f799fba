package server

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type BaseServerConfig struct {
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	Log      LogServerConfig      `mapstructure:"log"      yaml:"log"`
	HTTP     HTTPServerConfig     `mapstructure:"http"     yaml:"http"`
	Match    MatchServerConfig    `mapstructure:"match"    yaml:"match"`
	Session  SessionServerConfig  `mapstructure:"session"  yaml:"session"`
	Metadata MetadataServerConfig `mapstructure:"metadata" yaml:"metadata"`
	Inquiry  InquiryServerConfig  `mapstructure:"inquiry"  yaml:"inquiry"`
}

// LoadServerConfig unmarshals viper's current state over the defaults and
// validates the result.
func LoadServerConfig() (*BaseServerConfig, error) {
	cfg := &BaseServerConfig{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate rejects values the agent cannot start with.
func (cfg *BaseServerConfig) Validate() error {
	if _, err := time.ParseDuration(cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown_timeout: %w", err)
	}
	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log.format '%s'", cfg.Log.Format)
	}
	if cfg.HTTP.Address == "" {
		return fmt.Errorf("http.address is required")
	}
	if cfg.Match.GPATolerance < 0 || cfg.Match.ScoreTolerance < 0 {
		return fmt.Errorf("match tolerances must not be negative")
	}
	if cfg.Session.IdleTimeout <= 0 {
		return fmt.Errorf("session.idle_timeout must be positive")
	}
	if cfg.Session.SweepInterval <= 0 {
		return fmt.Errorf("session.sweep_interval must be positive")
	}
	switch cfg.Metadata.Type {
	case "sqlite":
		if cfg.Metadata.SQLite.Path == "" {
			return fmt.Errorf("metadata.sqlite.path is required")
		}
	case "postgres":
		if cfg.Metadata.Postgres.DSN == "" {
			return fmt.Errorf("metadata.postgres.dsn is required")
		}
	case "none":
	default:
		return fmt.Errorf("unknown metadata.type '%s'", cfg.Metadata.Type)
	}
	if cfg.Inquiry.Publish.Enabled() && cfg.Inquiry.Publish.Topic == "" {
		return fmt.Errorf("inquiry.publish.topic is required when brokers are set")
	}
	return nil
}
