// Package config loads service configuration and manages the hot-reloading
// symptom vocabulary.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/strokesense/orchestrator/internal/db"
	"github.com/strokesense/orchestrator/internal/tracing"
)

// Config is the full service configuration.
type Config struct {
	Service    ServiceConfig    `mapstructure:"service"`
	Temporal   TemporalConfig   `mapstructure:"temporal"`
	EventLog   EventLogConfig   `mapstructure:"event_log"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Tracing    tracing.Config   `mapstructure:"tracing"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

type ServiceConfig struct {
	Port       int `mapstructure:"port"`
	HealthPort int `mapstructure:"health_port"`
}

type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

// EventLogConfig selects the log-sink collaborator. Backend is one of
// none|redis|postgres.
type EventLogConfig struct {
	Backend  string    `mapstructure:"backend"`
	RedisURL string    `mapstructure:"redis_url"`
	Postgres db.Config `mapstructure:"postgres"`
}

type VocabularyConfig struct {
	Path string `mapstructure:"path"` // optional override file, hot-reloaded
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Load reads configuration from CONFIG_PATH (default config/strokesense.yaml).
// A missing file is not an error: defaults and env overrides still apply.
func Load() (*Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/strokesense.yaml"
	}

	v := viper.New()
	v.SetConfigFile(cfgPath)
	v.SetEnvPrefix("STROKESENSE")
	v.AutomaticEnv()

	v.SetDefault("service.port", 8080)
	v.SetDefault("service.health_port", 8081)
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "stroke-assessment")
	v.SetDefault("event_log.backend", "none")
	v.SetDefault("logging.level", "info")
	v.SetDefault("rate_limit.requests_per_second", 50)
	v.SetDefault("rate_limit.burst", 100)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if _, statErr := os.Stat(cfgPath); statErr == nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
