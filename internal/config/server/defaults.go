package server

import (
	"time"

	"github.com/spf13/viper"
)

func GetServerDefault() BaseServerConfig {
	return BaseServerConfig{
		ShutdownTimeout: "10s",

		Log: LogServerConfig{
			Level:      "INFO",
			Format:     "text",
			TimeFormat: "2006-01-02 15:04:05",
			Color:      true,
			Stdout:     true,
			File: LogFileConfig{
				MaxSizeMB:  128,
				MaxBackups: 5,
				MaxAgeDays: 16,
			},
		},
		HTTP: HTTPServerConfig{
			Address:           ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			RequestTimeout:    30 * time.Second,
			Metrics:           true,
		},
		Match: MatchServerConfig{
			GPATolerance:   0.2,
			ScoreTolerance: 100,
		},
		Session: SessionServerConfig{
			IdleTimeout:   2 * time.Hour,
			SweepInterval: time.Minute,
		},
		Metadata: MetadataServerConfig{
			Type: "sqlite",
			SQLite: MetadataSQLiteConfig{
				Path: "pathways.db",
			},
			Postgres: MetadataPostgresConfig{
				MaxOpenConns: 10,
			},
		},
		Inquiry: InquiryServerConfig{
			Publish: InquiryPublishConfig{
				Topic: "pathways.inquiries",
			},
		},
	}
}

func setDefaults() {
	defaults := GetServerDefault()

	viper.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.format", defaults.Log.Format)
	viper.SetDefault("log.time_format", defaults.Log.TimeFormat)
	viper.SetDefault("log.color", defaults.Log.Color)
	viper.SetDefault("log.stdout", defaults.Log.Stdout)
	viper.SetDefault("log.file.path", defaults.Log.File.Path)
	viper.SetDefault("log.file.max_size_mb", defaults.Log.File.MaxSizeMB)
	viper.SetDefault("log.file.max_backups", defaults.Log.File.MaxBackups)
	viper.SetDefault("log.file.max_age_days", defaults.Log.File.MaxAgeDays)
	viper.SetDefault("log.file.compress", defaults.Log.File.Compress)

	viper.SetDefault("http.address", defaults.HTTP.Address)
	viper.SetDefault("http.read_header_timeout", defaults.HTTP.ReadHeaderTimeout)
	viper.SetDefault("http.request_timeout", defaults.HTTP.RequestTimeout)
	viper.SetDefault("http.metrics", defaults.HTTP.Metrics)

	viper.SetDefault("match.gpa_tolerance", defaults.Match.GPATolerance)
	viper.SetDefault("match.score_tolerance", defaults.Match.ScoreTolerance)

	viper.SetDefault("session.idle_timeout", defaults.Session.IdleTimeout)
	viper.SetDefault("session.sweep_interval", defaults.Session.SweepInterval)

	viper.SetDefault("metadata.type", defaults.Metadata.Type)
	viper.SetDefault("metadata.sqlite.path", defaults.Metadata.SQLite.Path)
	viper.SetDefault("metadata.postgres.dsn", defaults.Metadata.Postgres.DSN)
	viper.SetDefault("metadata.postgres.max_open_conns", defaults.Metadata.Postgres.MaxOpenConns)

	viper.SetDefault("inquiry.publish.brokers", defaults.Inquiry.Publish.Brokers)
	viper.SetDefault("inquiry.publish.topic", defaults.Inquiry.Publish.Topic)
}
