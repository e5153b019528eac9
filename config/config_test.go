package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV", "test")
}

func TestLoadDefaults(t *testing.T) {
	setTestEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "6379", cfg.RedisPort)
}

func TestLoadReadsEnvironment(t *testing.T) {
	setTestEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "mealforge_test")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "mealforge_test", cfg.DBName)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	setTestEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadAPIKeyFromFile(t *testing.T) {
	setTestEnv(t)

	keyFile := filepath.Join(t.TempDir(), "api_key")
	require.NoError(t, os.WriteFile(keyFile, []byte("  secret-key \n"), 0o600))
	t.Setenv("DEEPSEEK_API_KEY_FILE", keyFile)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.LLMAPIKey)
}

func TestLoadRequiresAPIKeyOutsideTests(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY_FILE", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestEnvironmentDetection(t *testing.T) {
	t.Setenv("ENV", "test")
	assert.True(t, IsTest())
	assert.False(t, IsProduction())

	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
}
