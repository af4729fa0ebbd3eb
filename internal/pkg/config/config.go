package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SecretKey signs redirect tokens for the external webapp. Required;
	// the process refuses to start without it.
	SecretKey string `env:"SKT_SECRET_KEY"`
	// WebappURL is the redirect target host for the SKT_User role. Required.
	WebappURL string `env:"SKT_WEBAPP_URL"`
	// JWTSecret signs admin session tokens.
	JWTSecret string `env:"JWT_SECRET"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=account_gateway"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ThrottleConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=10"`
	Window      time.Duration `env:"LOGIN_THROTTLE_WINDOW, default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate fails fast on configuration the service cannot run without,
// instead of failing at the first token generation.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("config: SKT_SECRET_KEY is required")
	}
	if c.WebappURL == "" {
		return errors.New("config: SKT_WEBAPP_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	return nil
}
