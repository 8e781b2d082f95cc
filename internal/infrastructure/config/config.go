package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=60m"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
	// BootstrapAdminEmail promotes the matching account to admin at startup.
	// The public register endpoint only ever creates members.
	BootstrapAdminEmail string `env:"BOOTSTRAP_ADMIN_EMAIL"`
}

type RateLimitConfig struct {
	TaskRead  int           `env:"RATE_LIMIT_TASK_READ,  default=60"`
	TaskWrite int           `env:"RATE_LIMIT_TASK_WRITE, default=30"`
	Window    time.Duration `env:"RATE_LIMIT_WINDOW,     default=60s"`
	// FailOpen allows requests when the counter store is unreachable so an
	// auxiliary outage does not take the API down. Set false to fail closed.
	FailOpen bool          `env:"RATE_LIMIT_FAIL_OPEN, default=true"`
	CacheTTL time.Duration `env:"CACHE_TTL,            default=30s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=race_weekend"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
