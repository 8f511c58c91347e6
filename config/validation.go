package config

import (
	"fmt"
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

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	Required []string
	// Postgres lists keys that only matter when DB_DRIVER=postgres.
	Postgres []string
}

var requirements = map[Environment]ConfigRequirements{
	Development: {
		Required: []string{"SERVER_PORT", "RECIPE_PROVIDER_API_KEY"},
		Postgres: []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME"},
	},
	Test: {
		Required: []string{"SERVER_PORT"},
		Postgres: []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME"},
	},
	CI: {
		Required: []string{"SERVER_PORT"},
		Postgres: []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME"},
	},
	Production: {
		Required: []string{
			"SERVER_PORT",
			"AUTH_ISSUER",
			"AUTH_AUDIENCE",
			"RECIPE_PROVIDER_API_KEY",
			"S3_BUCKET_NAME",
		},
		Postgres: []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE"},
	},
}

// fieldValues maps configuration keys to their loaded values.
func fieldValues(cfg *Config) map[string]string {
	return map[string]string{
		"SERVER_PORT":             cfg.ServerPort,
		"DB_HOST":                 cfg.DBHost,
		"DB_PORT":                 cfg.DBPort,
		"DB_USER":                 cfg.DBUser,
		"DB_PASSWORD":             cfg.DBPassword,
		"DB_NAME":                 cfg.DBName,
		"DB_SSL_MODE":             cfg.DBSSLMode,
		"AUTH_ISSUER":             cfg.AuthIssuer,
		"AUTH_AUDIENCE":           cfg.AuthAudience,
		"RECIPE_PROVIDER_API_KEY": cfg.ProviderAPIKey,
		"S3_BUCKET_NAME":          cfg.S3BucketName,
	}
}

// ValidateConfig checks if the configuration meets the requirements for its environment.
// Every problem is reported, not just the first.
func ValidateConfig(cfg *Config) error {
	reqs, ok := requirements[cfg.Environment]
	if !ok {
		return ValidationError{Field: "ENV", Message: fmt.Sprintf("unknown environment %q", cfg.Environment)}
	}

	values := fieldValues(cfg)
	var errs []string

	keys := append([]string{}, reqs.Required...)
	switch cfg.DBDriver {
	case "postgres":
		keys = append(keys, reqs.Postgres...)
	case "sqlite":
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "must be postgres or sqlite"}.Error())
	}

	for _, key := range keys {
		if values[key] == "" {
			errs = append(errs, ValidationError{Field: key, Message: "is required"}.Error())
		}
	}

	if cfg.AuthSecret == "" && cfg.AuthPublicKeyFile == "" {
		errs = append(errs, ValidationError{Field: "AUTH_SECRET", Message: "AUTH_SECRET or AUTH_PUBLIC_KEY_FILE is required"}.Error())
	}
	if cfg.GenerationLimit <= 0 {
		errs = append(errs, ValidationError{Field: "MEAL_PLAN_GENERATION_LIMIT", Message: "must be positive"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
