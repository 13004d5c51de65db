// Package config loads the gradebook configuration from an optional YAML
// file layered over DefaultConfig, then applies environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-gradebook/internal/domain"
)

// Config holds the configuration of the CLI, the worker and the result cache.
type Config struct {
	Log      LogConfig      `yaml:"log" json:"log"`
	Temporal TemporalConfig `yaml:"temporal" json:"temporal"`
	Cache    CacheConfig    `yaml:"cache" json:"cache"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`
}

// TemporalConfig locates the Temporal frontend and the report task queue.
type TemporalConfig struct {
	HostPort        string        `yaml:"host_port" json:"host_port" validate:"required,hostname_port"`
	Namespace       string        `yaml:"namespace" json:"namespace" validate:"required"`
	TaskQueue       string        `yaml:"task_queue" json:"task_queue" validate:"required"`
	ActivityTimeout time.Duration `yaml:"activity_timeout" json:"activity_timeout" validate:"gt=0"`
}

// CacheConfig controls the Redis result cache.
type CacheConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled"`
	RedisAddr     string        `yaml:"redis_addr" json:"redis_addr" validate:"required_if=Enabled true"`
	RedisPassword string        `yaml:"-" json:"-"` // Sensitive, environment only.
	RedisDB       int           `yaml:"redis_db" json:"redis_db" validate:"min=0"`
	TTL           time.Duration `yaml:"ttl" json:"ttl" validate:"gte=0"`
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := domain.Validator().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return nil
}

// SlogLevel converts the configured level to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a logger writing to w with the configured format and level.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Load reads the YAML file at path over DefaultConfig. An empty path yields
// the defaults. Environment overrides are applied before validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := Decode(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg, os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode decodes YAML data into cfg, keeping values the document omits.
// Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvRedisPassword); ok {
		cfg.Cache.RedisPassword = v
	}
	if v, ok := lookup(EnvTemporalHostPort); ok && v != "" {
		cfg.Temporal.HostPort = v
	}
}
