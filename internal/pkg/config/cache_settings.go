package config

import "time"

// CacheSettings configures the optional Redis completion cache.
// An empty RedisAddr disables caching.
type CacheSettings struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether a Redis address was configured
func (s *CacheSettings) Enabled() bool {
	return s.RedisAddr != ""
}
