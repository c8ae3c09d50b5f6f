package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Store   StoreConfig
	Redis   RedisConfig
	Session SessionConfig
}

// StoreConfig holds the connection parameters of the client store. URL and
// Key have no defaults; startup fails without them.
type StoreConfig struct {
	Driver   string `env:"STORE_DRIVER, default=postgres"`
	URL      string `env:"STORE_URL, required"`
	Key      string `env:"STORE_KEY, required"`
	Database string `env:"MONGO_DB,  default=crm"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL,    default=8h"`
	CookieName   string        `env:"SESSION_COOKIE, default=crm_session"`
	CookieSecure bool          `env:"COOKIE_SECURE,  default=false"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Store.Driver {
	case DriverPostgres, DriverMongo:
	default:
		return nil, fmt.Errorf("config: unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}
	return &cfg, nil
}
