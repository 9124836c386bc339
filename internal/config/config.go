// Package config loads the process configuration once at startup. Values come
// from the OS environment, then an optional .env file, and are validated
// before any component is constructed. Components receive the subset they
// need; nothing reads the environment after Load returns.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvLocal = "local"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	insecureDefaultSecret = "change_me_in_production"
)

var ErrInsecureSecret = errors.New("SECRET_KEY must be set outside the local environment")

type Config struct {
	Environment    string        `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Port           string        `envconfig:"PORT" default:"5000" validate:"required,numeric"`
	SecretKey      string        `envconfig:"SECRET_KEY" default:"change_me_in_production" validate:"required"`
	TimeZone       string        `envconfig:"TZ" default:"UTC"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s" validate:"gt=0"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Database DatabaseConfig
	Chat     ChatConfig
}

type DatabaseConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"sqlite" validate:"oneof=sqlite postgres"`
	Path   string `envconfig:"DB_PATH" default:"data/femora.db"`
	URL    string `envconfig:"DATABASE_URL" validate:"required_if=Driver postgres"`
}

type ChatConfig struct {
	APIKey  string        `envconfig:"COHERE_API_KEY"`
	URL     string        `envconfig:"CHAT_API_URL" default:"https://api.cohere.ai/v1/chat" validate:"required,url"`
	Model   string        `envconfig:"CHAT_MODEL" default:"command" validate:"required"`
	Timeout time.Duration `envconfig:"CHAT_TIMEOUT" default:"30s" validate:"gt=0"`
}

// Load reads .env (when present), processes the environment and validates
// the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) Validate() error {
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if cfg.Environment != EnvLocal && cfg.SecretKey == insecureDefaultSecret {
		return ErrInsecureSecret
	}
	return nil
}

func (cfg *Config) IsProduction() bool {
	return cfg.Environment == "prod"
}

// Location resolves TimeZone, falling back to UTC for unknown names.
func (cfg *Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return time.UTC
	}
	return location
}

// EnvOrDefault is used by CLI flags that mirror configuration keys.
func EnvOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
