package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	GRPCPort int `env:"GRPC_PORT" envDefault:"8081"`
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	SecretKey   string `env:"SECRET_KEY,required,notEmpty"`
	AIModel     string `env:"AI_MODEL,required,notEmpty"`

	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	ChatRatePerSec float64 `env:"CHAT_RATE_PER_SEC" envDefault:"2"`
	ChatBurst      int     `env:"CHAT_BURST" envDefault:"5"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	SeedOnStart  bool   `env:"SEED_ON_START" envDefault:"false"`
}

func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from the given map instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.ChatRatePerSec <= 0 || cfg.ChatBurst <= 0 {
		return Config{}, fmt.Errorf("chat rate limit must be positive")
	}
	return cfg, nil
}

// SeedConfig is the subset read by the seeder CLI, which needs no secrets.
type SeedConfig struct {
	AppEnv      string `env:"APP_ENV" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
}

func LoadSeed() (SeedConfig, error) {
	return LoadSeedFrom(nil)
}

// LoadSeedFrom reads vars, or the process environment when vars is nil.
func LoadSeedFrom(vars map[string]string) (SeedConfig, error) {
	var cfg SeedConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return SeedConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
