// Package config manages configuration for the bookarc backend services.
// Service configuration is loaded from environment variables at startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/bookarc/bookarc/internal/constants"
)

// Env represents environment variable configuration for the service.
// All configuration values are loaded from environment variables at startup.
type Env struct {
	// Environment selects the logging format. Defaults to "production".
	Environment constants.Environment `env:"BOOKARC_ENVIRONMENT" envDefault:"production"`

	// Port is the HTTP server port used by the local development server.
	Port string `env:"BOOKARC_DEV_SERVER_PORT" envDefault:"8080"`

	// RequestTimeout is the per-request timeout. Defaults to 0, which means
	// no timeout middleware is added, letting the environment (e.g., Lambda
	// with its own timeout) handle timeouts.
	RequestTimeout time.Duration `env:"BOOKARC_REQUEST_TIMEOUT" envDefault:"0"`

	// DatabaseURL is the PostgreSQL connection string (RDS).
	// NOTICE: this is required and cannot be empty.
	DatabaseURL string `env:"BOOKARC_DATABASE_URL,notEmpty" envRequired:"true"`

	// DBMaxConns caps the pgx connection pool size. Lambda invocations are
	// single-request, so the pool stays small.
	DBMaxConns int32 `env:"BOOKARC_DB_MAX_CONNS" envDefault:"4"`

	// DBMinConns is the minimum number of pooled connections kept warm.
	DBMinConns int32 `env:"BOOKARC_DB_MIN_CONNS" envDefault:"0"`

	// DBMaxConnLifetime bounds how long a pooled connection is reused.
	DBMaxConnLifetime time.Duration `env:"BOOKARC_DB_MAX_CONN_LIFETIME" envDefault:"30m"`

	// UploadsBucket is the S3 bucket for user-uploaded images.
	UploadsBucket string `env:"BOOKARC_UPLOADS_BUCKET,notEmpty" envRequired:"true"`

	// AllowedOrigins lists CORS origins allowed to call the API.
	// Defaults to "*" matching the gateway configuration.
	AllowedOrigins []string `env:"BOOKARC_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// LogLevel is the log level for the logger. Defaults to "INFO".
	LogLevel slog.Level `env:"BOOKARC_LOG_LEVEL" envDefault:"INFO"`
}

// LoadEnv loads and validates environment variables into an Env struct.
// It returns an error if required variables are missing or invalid.
func LoadEnv() (*Env, error) {
	cfg := &Env{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// MustLoadEnv loads environment variables and exits if there's an error.
// NOTICE: this is suitable for application startup where configuration errors should be fatal.
func MustLoadEnv() *Env {
	cfg, err := LoadEnv()
	if err != nil {
		slog.Error("failed to load environment configuration", "error", err)

		os.Exit(1)
	}

	return cfg
}
