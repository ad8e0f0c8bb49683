package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "images", cfg.Storage.Bucket)
	assert.Equal(t, 100, cfg.Security.RateLimitPerMinute)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("JWT_ACCESS_EXPIRE", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Security.CORSAllowedOrigins)
}

func TestValidateRejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateCDNRequiresBase(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("STORAGE_PROVIDER", "cdn")
	t.Setenv("STORAGE_PUBLIC_BASE", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_PUBLIC_BASE")
}

func TestDSNAndRedisAddr(t *testing.T) {
	cfg := &Config{}
	cfg.Database = DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "store", SSLMode: "disable",
	}
	cfg.Redis = RedisConfig{Host: "cache", Port: "6379"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=store sslmode=disable", cfg.GetDatabaseDSN())
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
}
