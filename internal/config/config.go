// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	DB       DBConfig        `mapstructure:"db"`
	Fetch    FetchConfig     `mapstructure:"fetch"`
	Resolver ResolverConfig  `mapstructure:"resolver"`
	Logging  LoggingConfig   `mapstructure:"logging"`
	Sources  []awards.Source `mapstructure:"sources"`
	Triggers []string        `mapstructure:"triggers"`
}

// ServerConfig controls the admin HTTP server.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig controls access to the Postgres store.
type DBConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxConns     int32  `mapstructure:"max_conns"`
	MinConns     int32  `mapstructure:"min_conns"`
	ConnLifetime int    `mapstructure:"conn_lifetime_minutes"`
}

// FetchConfig configures source retrieval behavior.
type FetchConfig struct {
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	RetryBackoffMs int    `mapstructure:"retry_backoff_ms"`
}

// ResolverConfig tunes category resolution.
type ResolverConfig struct {
	DefaultMaxNominees int `mapstructure:"default_max_nominees"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk and environment. Environment variables use
// the OSCAR_ prefix with underscores for nesting.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("OSCAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("db.max_conns", 4)
	v.SetDefault("db.min_conns", 1)
	v.SetDefault("db.conn_lifetime_minutes", 30)
	v.SetDefault("fetch.user_agent", "oscar-nominee-importer/1.0")
	v.SetDefault("fetch.timeout_seconds", 10)
	v.SetDefault("fetch.retry_backoff_ms", 500)
	v.SetDefault("resolver.default_max_nominees", 10)
	v.SetDefault("logging.development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be > 0")
	}
	if c.Resolver.DefaultMaxNominees <= 0 {
		return fmt.Errorf("resolver.default_max_nominees must be > 0")
	}
	for i, src := range c.Sources {
		if src.URL == "" {
			return fmt.Errorf("sources[%d].url is required", i)
		}
		switch src.Kind {
		case awards.SourceHTML, awards.SourceFeed:
		default:
			return fmt.Errorf("sources[%d].kind must be %q or %q", i, awards.SourceHTML, awards.SourceFeed)
		}
	}
	return nil
}

// FetchTimeout returns the per-attempt fetch timeout as a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// RetryBackoff returns the fixed wait between fetch attempts.
func (c Config) RetryBackoff() time.Duration {
	return time.Duration(c.Fetch.RetryBackoffMs) * time.Millisecond
}

// ConnLifetime returns the pooled connection lifetime.
func (c Config) ConnLifetime() time.Duration {
	return time.Duration(c.DB.ConnLifetime) * time.Minute
}
