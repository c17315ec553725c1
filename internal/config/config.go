package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config is the process-wide configuration, read once at startup and
// treated as immutable afterwards
type Config struct {
	// HTTP server
	Host string `env:"PLAYERBASE_HOST" envDefault:""`
	Port int    `env:"PLAYERBASE_PORT" envDefault:"8080"`

	// Storage backend ("memory" or "redis")
	StorageType string `env:"PLAYERBASE_STORAGE" envDefault:"memory"`
	RedisURL    string `env:"PLAYERBASE_REDIS_URL"`

	// Token signing
	TokenSecret     string `env:"PLAYERBASE_TOKEN_SECRET,required"`
	TokenAlgorithm  string `env:"PLAYERBASE_TOKEN_ALGORITHM" envDefault:"HS256"`
	TokenTTLMinutes int    `env:"PLAYERBASE_TOKEN_TTL_MINUTES" envDefault:"30"`

	// VK OAuth application; all three must be set to enable federated login
	VKClientID     string `env:"PLAYERBASE_VK_CLIENT_ID"`
	VKClientSecret string `env:"PLAYERBASE_VK_CLIENT_SECRET"`
	VKRedirectURI  string `env:"PLAYERBASE_VK_REDIRECT_URI"`
}

// Load parses configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	if cfg.StorageType != StorageTypeMemory && cfg.StorageType != StorageTypeRedis {
		return nil, errors.New("PLAYERBASE_STORAGE must be 'memory' or 'redis'")
	}
	if cfg.StorageType == StorageTypeRedis && cfg.RedisURL == "" {
		return nil, errors.New("PLAYERBASE_REDIS_URL required when PLAYERBASE_STORAGE=redis")
	}

	return &cfg, nil
}

// TokenTTL returns the configured token validity as a duration
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// FederationEnabled reports whether the VK provider is fully configured
func (c *Config) FederationEnabled() bool {
	return c.VKClientID != "" && c.VKClientSecret != "" && c.VKRedirectURI != ""
}
