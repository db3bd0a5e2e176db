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

	Auth     AuthConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Realtime RealtimeConfig
}

// AuthConfig carries the token lifecycle settings. Access and refresh tokens
// are signed with distinct secrets so one class can never be replayed as the
// other.
type AuthConfig struct {
	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=24h"`

	ThrottleMaxFailures int `env:"LOGIN_THROTTLE_MAX_FAILURES, default=5"`
	ThrottleWindowSec   int `env:"LOGIN_THROTTLE_WINDOW_SEC,   default=900"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=employee_management"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RealtimeConfig struct {
	// AllowedOrigins are host patterns authorized for cross-origin websocket
	// upgrades (e.g. "localhost:5173").
	AllowedOrigins []string `env:"WS_ALLOWED_ORIGINS, default=localhost:5173"`
	Workers        int      `env:"NOTIFY_WORKERS,     default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
