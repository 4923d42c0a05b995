package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBDriver    string
	DatabaseURL string

	// File store configuration
	UploadDir    string
	MaxUploadMB  int64
	S3BucketName string
	AWSRegion    string

	// Redis-backed rate limiting, disabled when RedisURL is empty
	RedisURL         string
	RateLimitLimit   int
	RateLimitWindow  time.Duration
	RateLimitEnabled bool

	// Logging
	LogLevel  string
	LogFormat string

	Env Environment
}

// LoadConfig reads the optional .env file, then environment variables and
// Docker secrets, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg := &Config{Env: env}

	cfg.ServerHost = lookup("SERVER_HOST", "")
	cfg.ServerPort = lookup("PORT", lookup("SERVER_PORT", "5000"))

	cfg.DBDriver = strings.ToLower(lookup("DB_DRIVER", DriverPostgres))
	cfg.DatabaseURL = lookup("DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		switch cfg.DBDriver {
		case DriverSQLite:
			cfg.DatabaseURL = "recipes.db"
		case DriverPostgres:
			cfg.DatabaseURL = postgresURL()
		}
	}

	cfg.UploadDir = lookup("UPLOAD_DIR", "uploads")
	cfg.S3BucketName = lookup("S3_BUCKET_NAME", "")
	cfg.AWSRegion = lookup("AWS_REGION", "")

	var err error
	if cfg.MaxUploadMB, err = strconv.ParseInt(lookup("MAX_UPLOAD_MB", "32"), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %w", err)
	}

	cfg.RedisURL = lookup("REDIS_URL", "")
	cfg.RateLimitEnabled = cfg.RedisURL != ""
	if cfg.RateLimitLimit, err = strconv.Atoi(lookup("RATE_LIMIT_REQUESTS", "100")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %w", err)
	}
	if cfg.RateLimitWindow, err = time.ParseDuration(lookup("RATE_LIMIT_WINDOW", "1m")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	defaultFormat := "json"
	if env == Development {
		defaultFormat = "console"
	}
	cfg.LogLevel = lookup("LOG_LEVEL", "info")
	cfg.LogFormat = lookup("LOG_FORMAT", defaultFormat)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// postgresURL assembles a connection string from the individual DB_* settings
func postgresURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(lookup("DB_USER", "postgres"), lookup("DB_PASSWORD", "postgres")),
		Host:   lookup("DB_HOST", "localhost") + ":" + lookup("DB_PORT", "5432"),
		Path:   "/" + lookup("DB_NAME", "recipes"),
	}
	q := u.Query()
	q.Set("sslmode", lookup("DB_SSL_MODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

// lookup returns the environment variable, then the matching Docker secret
// (lower-cased key), then def.
func lookup(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
