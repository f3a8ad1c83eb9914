package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DB_DRIVER", "DB_DSN", "JWT_SECRET", "CORS_ORIGIN", "ADMIN_EMAIL", "ADMIN_PASSWORD"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "shoplite.db", cfg.DBDSN)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "http://localhost:5173", cfg.CORSOrigin)
	assert.Empty(t, cfg.AdminEmail)
	assert.Empty(t, cfg.AdminPassword)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "staging")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/shoplite?parseTime=true")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("CORS_ORIGIN", "https://shop.example.com")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, "https://shop.example.com", cfg.CORSOrigin)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, "hunter2", cfg.AdminPassword)
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("SOME_UNSET_KEY", "")
	assert.Equal(t, "fallback", getEnv("SOME_UNSET_KEY", "fallback"))

	t.Setenv("SOME_SET_KEY", "value")
	assert.Equal(t, "value", getEnv("SOME_SET_KEY", "fallback"))
}
