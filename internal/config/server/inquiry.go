package server

// InquiryServerConfig configures where accepted consultation requests are
// published besides the metadata store. Publishing is off while Brokers is empty.
type InquiryServerConfig struct {
	Publish InquiryPublishConfig `mapstructure:"publish" yaml:"publish"`
}

type InquiryPublishConfig struct {
	Brokers []string `mapstructure:"brokers" yaml:"brokers"`
	Topic   string   `mapstructure:"topic"   yaml:"topic"`
}

func (cfg InquiryPublishConfig) Enabled() bool {
	return len(cfg.Brokers) > 0
}
