package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// devJWTSecret is only accepted outside production.
const devJWTSecret = "cookmate-dev-secret"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// StoreDriver selects the catalog store implementation.
	StoreDriver string
	SQLitePath  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	// MigrationsDir holds the SQL migrations applied on postgres.
	MigrationsDir string

	MongoURI      string
	MongoDatabase string

	// Redis is optional; without it rate limiting and token revocation are off.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	JWTSecret string
	TokenTTL  time.Duration

	// RecipeCreateLimit is the number of recipe submissions allowed per user
	// per hour.
	RecipeCreateLimit int

	S3BucketName string
	AWSRegion    string
	S3Endpoint   string

	LogLevel string
}

// RedisEnabled reports whether any redis location is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// LoadConfig reads configuration from the environment. Local environments
// first load a .env file if one exists; docker secrets in SECRETS_DIR
// override sensitive values everywhere except CI.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env.Local() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := loadFromEnv(env)

	switch env {
	case CI:
		loadCISecrets(cfg)
	default:
		loadDockerSecrets(cfg)
	}

	if env.Local() && cfg.JWTSecret == "" {
		log.Printf("[Config] JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func loadFromEnv(env Environment) *Config {
	defaultDriver := DriverPostgres
	if env.Local() {
		defaultDriver = DriverMemory
	}

	return &Config{
		Environment:       env,
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		ServerHost:        getEnv("SERVER_HOST", "0.0.0.0"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", defaultDriver)),
		SQLitePath:        getEnv("SQLITE_PATH", "cookmate.db"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getEnv("DB_NAME", "cookmate"),
		DBSSLMode:         getEnv("DB_SSL_MODE", "disable"),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "migrations"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDatabase:     getEnv("MONGO_DATABASE", "cookmate"),
		RedisHost:         os.Getenv("REDIS_HOST"),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisURL:          os.Getenv("REDIS_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          getEnvDuration("TOKEN_TTL", 24*time.Hour),
		RecipeCreateLimit: getEnvInt("RECIPE_CREATE_LIMIT", 10),
		S3BucketName:      os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// loadCISecrets reads sensitive values from the TEST_* variables the CI
// runner injects, keeping any value already set directly.
func loadCISecrets(cfg *Config) {
	overrideIfSet(&cfg.DBPassword, os.Getenv("TEST_DB_PASSWORD"))
	overrideIfSet(&cfg.JWTSecret, os.Getenv("TEST_JWT_SECRET"))
	overrideIfSet(&cfg.RedisPassword, os.Getenv("TEST_REDIS_PASSWORD"))
	overrideIfSet(&cfg.RedisURL, os.Getenv("TEST_REDIS_URL"))
}

func loadDockerSecrets(cfg *Config) {
	overrideIfSet(&cfg.DBUser, readSecret("db_user"))
	overrideIfSet(&cfg.DBPassword, readSecret("db_password"))
	overrideIfSet(&cfg.JWTSecret, readSecret("jwt_secret"))
	overrideIfSet(&cfg.RedisPassword, readSecret("redis_password"))
	overrideIfSet(&cfg.RedisURL, readSecret("redis_url"))
	overrideIfSet(&cfg.MongoURI, readSecret("mongo_uri"))
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func overrideIfSet(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
