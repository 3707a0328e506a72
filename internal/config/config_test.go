package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.Equal(t, "https://dummyjson.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Empty(t, cfg.Redis.Host)
	assert.Equal(t, 120, cfg.RateLimit.RequestsPerMinute)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DATA_DIR", "/tmp/storefront")
	t.Setenv("CATALOG_BASE_URL", "http://localhost:8081")
	t.Setenv("CATALOG_TIMEOUT_SECONDS", "3")
	t.Setenv("REDIS_HOST", "redis.internal")

	cfg := Load()

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "/tmp/storefront", cfg.Storage.DataDir)
	assert.Equal(t, "http://localhost:8081", cfg.Catalog.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
}
