package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Store   StoreConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// BackendConfig points at the Authentication Service. A zero Timeout means
// no client-side timeout.
type BackendConfig struct {
	URL     string        `env:"JOBPORTAL_BACKEND_URL, default=http://localhost:8001"`
	Timeout time.Duration `env:"AUTH_HTTP_TIMEOUT,     default=0s"`
}

// StoreConfig selects where the session token is persisted.
type StoreConfig struct {
	Driver string `env:"TOKEN_STORE, default=file"`
	File   string `env:"TOKEN_FILE,  default=.jobportal/token"`
	Key    string `env:"TOKEN_KEY,   default=token"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jobportal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether human-friendly output is wanted.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	switch cfg.Store.Driver {
	case "file", "memory", "redis", "mongo":
	default:
		return nil, fmt.Errorf("config: unknown TOKEN_STORE %q", cfg.Store.Driver)
	}
	return &cfg, nil
}
