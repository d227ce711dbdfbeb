package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnvs is a helper that sets multiple env vars and returns a cleanup function.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "development",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, "http://challenge-api.luizalabs.com/api/product/", cfg.CatalogBaseURL)
	assert.Equal(t, 3*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheShortTTL)
	assert.Equal(t, 24*time.Hour, cfg.CacheLongTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessExpiry)
	assert.True(t, cfg.CatalogBreaker)
}

func TestLoad_Development_AcceptsDefaultSecret(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "development",
		"JWT_SECRET":  "change-this-to-a-secure-secret",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_Production_RejectsDefaultSecret(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "production",
		"JWT_SECRET":  "change-this-to-a-secure-secret",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET must be explicitly set")
}

func TestLoad_Production_RejectsShortSecret(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "production",
		"JWT_SECRET":  "too-short",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestLoad_RejectsInvalidPort(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":        "development",
		"WISHLIST_HTTP_PORT": "70000",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoad_RejectsEmptyCatalogURL(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":      "development",
		"CATALOG_BASE_URL": "",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_BASE_URL")
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":             "development",
		"PRODUCT_CACHE_SHORT_TTL": "0s",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TTLs must be positive")
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db",
		PostgresPort: 5432,
		PostgresUser: "wishlist",
		PostgresPass: "secret",
		PostgresDB:   "wishlist_db",
		PostgresSSL:  "disable",
	}

	assert.Equal(t, "postgres://wishlist:secret@db:5432/wishlist_db?sslmode=disable", cfg.PostgresDSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "cache", RedisPort: 6379}

	assert.Equal(t, "cache:6379", cfg.RedisAddr())
}
