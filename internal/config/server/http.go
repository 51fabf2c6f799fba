package server

import "time"

type HTTPServerConfig struct {
	Address           string        `mapstructure:"address"             yaml:"address"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"     yaml:"request_timeout"`
	Metrics           bool          `mapstructure:"metrics"             yaml:"metrics"`
}
