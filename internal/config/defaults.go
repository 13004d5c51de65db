package config

import "time"

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Temporal defaults.
const (
	DefaultTemporalHostPort  = "localhost:7233"
	DefaultTemporalNamespace = "default"
	DefaultTaskQueue         = "gradebook-reports"
	DefaultActivityTimeout   = 30 * time.Second
)

// Cache defaults.
const (
	DefaultRedisAddr = "localhost:6379"
	DefaultCacheTTL  = time.Hour
)

// Environment variables read by Load.
const (
	EnvRedisPassword    = "GRADEBOOK_REDIS_PASSWORD"
	EnvTemporalHostPort = "GRADEBOOK_TEMPORAL_HOST_PORT"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Temporal: TemporalConfig{
			HostPort:        DefaultTemporalHostPort,
			Namespace:       DefaultTemporalNamespace,
			TaskQueue:       DefaultTaskQueue,
			ActivityTimeout: DefaultActivityTimeout,
		},
		Cache: CacheConfig{
			Enabled:   false,
			RedisAddr: DefaultRedisAddr,
			TTL:       DefaultCacheTTL,
		},
	}
}
