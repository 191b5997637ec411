package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
}

type BackendConfig struct {
	// BaseURL is the root of the booking REST API, including the version
	// prefix.
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:5003/api/v1"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=15s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	// CookieTTLDays is the credential cookie lifetime.
	CookieTTLDays int `env:"COOKIE_TTL_DAYS, default=7"`
	// CacheTTL bounds how long a confirmed profile is served without
	// re-hitting the backend.
	CacheTTL time.Duration `env:"SESSION_CACHE_TTL, default=5m"`
	// CatalogTTL bounds the public shop listing cache.
	CatalogTTL time.Duration `env:"CATALOG_CACHE_TTL, default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
