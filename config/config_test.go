package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "mealwise")
	t.Setenv("DB_NAME", "mealwise_test")
	t.Setenv("AUTH_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("RECIPE_CACHE_TTL", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "mealwise", cfg.DBUser)
	assert.Equal(t, "mealwise_test", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.AuthSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.ProviderCacheTTL)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("AUTH_SECRET", "test-secret")
	for _, key := range []string{"DB_DRIVER", "SERVER_PORT", "REDIS_URL", "REDIS_HOST", "MEAL_PLAN_GENERATION_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 10, cfg.GenerationLimit)
	assert.Equal(t, time.Hour, cfg.GenerationWindow)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfigReadsDockerSecrets(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("DB_PASSWORD", "")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth_secret"), []byte("from-secret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_password"), []byte("s3cret"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.AuthSecret)
	assert.Equal(t, "s3cret", cfg.DBPassword)
}

func TestValidateConfigProductionReportsEverything(t *testing.T) {
	cfg := &Config{Environment: Production, DBDriver: "postgres", GenerationLimit: 5}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	for _, key := range []string{"SERVER_PORT", "AUTH_ISSUER", "RECIPE_PROVIDER_API_KEY", "DB_PASSWORD", "AUTH_SECRET"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestValidateConfigRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{Environment: Test, DBDriver: "mysql", ServerPort: "8080", AuthSecret: "x", GenerationLimit: 1}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("prod"))
	assert.Equal(t, Production, ParseEnvironment("Production"))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}
