package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/internal/logger"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Identity provider token verification
	AuthIssuer        string
	AuthAudience      string
	AuthSecret        string
	AuthPublicKeyFile string

	// Recipe provider
	ProviderBaseURL      string
	ProviderAPIKey       string
	ProviderImageBaseURL string
	ProviderTimeout      time.Duration
	ProviderCacheTTL     time.Duration

	// Avatar storage
	S3BucketName string
	AWSRegion    string

	CORSOrigins []string

	// Meal plan generation limit per user
	GenerationLimit  int
	GenerationWindow time.Duration
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	switch env {
	case CI:
		loadFrom(cfg, os.Getenv)
	case Development, Test:
		// A missing .env is normal outside a developer checkout.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		loadFrom(cfg, envThenSecret)
	case Production:
		loadFrom(cfg, secretThenEnv)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	logger.L().Info("configuration loaded",
		zap.String("environment", string(env)),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("provider", cfg.ProviderBaseURL),
	)
	return cfg, nil
}

// loadFrom fills every field using lookup, applying defaults for empty values.
func loadFrom(cfg *Config, lookup func(string) string) {
	get := func(key, def string) string {
		if v := lookup(key); v != "" {
			return v
		}
		return def
	}

	defaultDriver := "postgres"
	if cfg.Environment == Test {
		defaultDriver = "sqlite"
	}

	cfg.ServerPort = get("SERVER_PORT", "8080")
	cfg.ServerHost = get("SERVER_HOST", "0.0.0.0")

	cfg.DBDriver = get("DB_DRIVER", defaultDriver)
	cfg.DBHost = get("DB_HOST", "localhost")
	cfg.DBPort = get("DB_PORT", "5432")
	cfg.DBUser = get("DB_USER", "postgres")
	cfg.DBPassword = get("DB_PASSWORD", "")
	cfg.DBName = get("DB_NAME", "mealwise")
	cfg.DBSSLMode = get("DB_SSL_MODE", "disable")
	cfg.SQLitePath = get("SQLITE_PATH", "file::memory:?cache=shared")
	cfg.MigrationsDir = get("MIGRATIONS_DIR", "migrations")

	cfg.RedisHost = get("REDIS_HOST", "")
	cfg.RedisPort = get("REDIS_PORT", "6379")
	cfg.RedisPassword = get("REDIS_PASSWORD", "")
	cfg.RedisDB = atoi(get("REDIS_DB", "0"), 0)
	cfg.RedisURL = get("REDIS_URL", "")

	cfg.AuthIssuer = get("AUTH_ISSUER", "")
	cfg.AuthAudience = get("AUTH_AUDIENCE", "")
	cfg.AuthSecret = get("AUTH_SECRET", "")
	cfg.AuthPublicKeyFile = get("AUTH_PUBLIC_KEY_FILE", "")

	cfg.ProviderBaseURL = strings.TrimRight(get("RECIPE_PROVIDER_URL", "https://api.spoonacular.com"), "/")
	cfg.ProviderAPIKey = get("RECIPE_PROVIDER_API_KEY", "")
	cfg.ProviderImageBaseURL = strings.TrimRight(get("RECIPE_IMAGE_BASE_URL", "https://img.spoonacular.com/recipes"), "/")
	cfg.ProviderTimeout = duration(get("RECIPE_PROVIDER_TIMEOUT", "10s"), 10*time.Second)
	cfg.ProviderCacheTTL = duration(get("RECIPE_CACHE_TTL", "6h"), 6*time.Hour)

	cfg.S3BucketName = get("S3_BUCKET_NAME", "")
	cfg.AWSRegion = get("AWS_REGION", "us-east-1")

	cfg.CORSOrigins = splitList(get("CORS_ORIGINS", "http://localhost:5173"))

	cfg.GenerationLimit = atoi(get("MEAL_PLAN_GENERATION_LIMIT", "10"), 10)
	cfg.GenerationWindow = duration(get("MEAL_PLAN_GENERATION_WINDOW", "1h"), time.Hour)
}

// envThenSecret prefers an environment variable and falls back to the Docker secret.
func envThenSecret(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return readSecret(strings.ToLower(key))
}

// secretThenEnv prefers the Docker secret and falls back to an environment variable.
func secretThenEnv(key string) string {
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return os.Getenv(key)
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

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func duration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisEnabled reports whether enough Redis settings exist to attempt a connection.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}
