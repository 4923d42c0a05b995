package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every failed check
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks the loaded configuration for values the server cannot start with
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{Field: "PORT", Message: fmt.Sprintf("must be a number between 1 and 65535, got %q", cfg.ServerPort)})
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.DatabaseURL == "" {
		errs = append(errs, ValidationError{Field: "DATABASE_URL", Message: "is required"})
	}

	if cfg.S3BucketName == "" && cfg.UploadDir == "" {
		errs = append(errs, ValidationError{Field: "UPLOAD_DIR", Message: "is required when S3_BUCKET_NAME is not set"})
	}

	if cfg.MaxUploadMB <= 0 {
		errs = append(errs, ValidationError{Field: "MAX_UPLOAD_MB", Message: "must be positive"})
	}

	if cfg.RateLimitEnabled {
		if cfg.RateLimitLimit <= 0 {
			errs = append(errs, ValidationError{Field: "RATE_LIMIT_REQUESTS", Message: "must be positive"})
		}
		if cfg.RateLimitWindow <= 0 {
			errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
