package config

import (
	"os"
	"strings"
)

// Environment is the runtime environment the service is deployed in.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV, with CI=true taking precedence. Unknown or empty
// values fall back to development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch Environment(strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))) {
	case Production:
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

// Local reports whether env is a developer machine or test run, where .env
// files are read and defaults are allowed for secrets.
func (e Environment) Local() bool {
	return e == Development || e == Test
}

func IsProduction() bool {
	return GetEnvironment() == Production
}
