package server

// LogServerConfig controls where the agent logs and in which format.
// Format is "text" or "json"; an empty Format means text.
type LogServerConfig struct {
	Level      string        `mapstructure:"level"       yaml:"level"`
	Format     string        `mapstructure:"format"      yaml:"format"`
	TimeFormat string        `mapstructure:"time_format" yaml:"time_format"`
	Color      bool          `mapstructure:"color"       yaml:"color"`
	Stdout     bool          `mapstructure:"stdout"      yaml:"stdout"`
	File       LogFileConfig `mapstructure:"file"        yaml:"file"`
}

// LogFileConfig enables a rotated log file when Path is set.
type LogFileConfig struct {
	Path       string `mapstructure:"path"         yaml:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"  yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"  yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress"     yaml:"compress"`
}

func (cfg LogServerConfig) JSON() bool {
	return cfg.Format == "json"
}
