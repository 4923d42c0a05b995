package config

import (
	"os"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. CI=true wins over ENV.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch Environment(os.Getenv("ENV")) {
	case Production:
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

// IsProduction reports whether the environment is production
func (e Environment) IsProduction() bool {
	return e == Production
}

// IsDevelopment reports whether the environment is development
func (e Environment) IsDevelopment() bool {
	return e == Development
}
