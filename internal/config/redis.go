package config

import "time"

// RedisConfig configures the order cache and payment event channel
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	OrderCacheTTL time.Duration `yaml:"order_cache_ttl"`
	PublishEvents bool          `yaml:"publish_events"`
}
