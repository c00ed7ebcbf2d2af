package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// driverRequirements lists the settings each store driver cannot run without.
var driverRequirements = map[string][]string{
	DriverMemory:   nil,
	DriverSQLite:   {"SQLITE_PATH"},
	DriverPostgres: {"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME"},
	DriverMongo:    {"MONGO_URI", "MONGO_DATABASE"},
}

// ValidateConfig checks cfg against the requirements of its environment and
// store driver. All problems are reported together.
func ValidateConfig(cfg *Config) error {
	var errs []error

	required, ok := driverRequirements[cfg.StoreDriver]
	if !ok {
		errs = append(errs, ValidationError{"STORE_DRIVER", fmt.Sprintf("unknown driver %q", cfg.StoreDriver)})
	}
	for _, key := range required {
		if cfg.value(key) == "" {
			errs = append(errs, ValidationError{key, fmt.Sprintf("required for store driver %s", cfg.StoreDriver)})
		}
	}

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "is required"})
	}
	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{"TOKEN_TTL", "must be positive"})
	}
	if cfg.RecipeCreateLimit <= 0 {
		errs = append(errs, ValidationError{"RECIPE_CREATE_LIMIT", "must be positive"})
	}

	if cfg.Environment == Production {
		if cfg.StoreDriver == DriverMemory {
			errs = append(errs, ValidationError{"STORE_DRIVER", "memory store is not allowed in production"})
		}
		if cfg.JWTSecret == devJWTSecret {
			errs = append(errs, ValidationError{"JWT_SECRET", "development secret is not allowed in production"})
		}
		if cfg.StoreDriver == DriverPostgres && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "is required in production"})
		}
	}

	return errors.Join(errs...)
}

func (c *Config) value(key string) string {
	switch key {
	case "SQLITE_PATH":
		return c.SQLitePath
	case "DB_HOST":
		return c.DBHost
	case "DB_PORT":
		return c.DBPort
	case "DB_USER":
		return c.DBUser
	case "DB_NAME":
		return c.DBName
	case "MONGO_URI":
		return c.MongoURI
	case "MONGO_DATABASE":
		return c.MongoDatabase
	}
	return ""
}
