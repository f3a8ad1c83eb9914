package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Port       string
	Env        string
	DBDriver   string
	DBDSN      string
	JWTSecret  string
	JWTExpiry  time.Duration
	CORSOrigin string

	// Optional seed account. Role is never client-assignable, so a
	// configured admin is the only way an admin account comes to exist.
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite3"),
		DBDSN:         getEnv("DB_DSN", "shoplite.db"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:     24 * time.Hour,
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:5173"),
		AdminName:     getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
