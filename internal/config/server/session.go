package server

import "time"

type SessionServerConfig struct {
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"   yaml:"idle_timeout"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval"`
}
