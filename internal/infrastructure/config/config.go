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

	JWT          JWTConfig
	Registration RegistrationConfig
	Mongo        MongoConfig
	Redis        RedisConfig
}

type JWTConfig struct {
	// Secret signs every issued token. There is no default: a process
	// without a signing key must not start.
	Secret    string        `env:"JWT_SECRET"`
	Algorithm string        `env:"JWT_ALGORITHM, default=HS256"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,     default=30m"`
}

type RegistrationConfig struct {
	Enabled bool   `env:"REGISTRATION_ENABLED, default=false"`
	Secret  string `env:"REGISTRATION_SECRET"`
	// AdminSecret elevates a registration to an admin account. Leaving
	// it unset disables elevation entirely.
	AdminSecret string `env:"ADMIN_REGISTRATION_SECRET"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cryptodata"`
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
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
