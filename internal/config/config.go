package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Port        string
	Env         string
	DBDriver    string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration
}

func Load() Config {
	driver := getEnv("DB_DRIVER", "sqlite")

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DBDriver:    driver,
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN(driver)),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:   24 * time.Hour,
	}

	if cfg.DBDriver != "mysql" && cfg.DBDriver != "sqlite" {
		slog.Error("unsupported DB_DRIVER, expected mysql or sqlite", "driver", cfg.DBDriver)
		os.Exit(1)
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func defaultDSN(driver string) string {
	if driver == "mysql" {
		return "root:password@tcp(127.0.0.1:3306)/spendtrack?parseTime=true"
	}
	return "file:spendtrack.db?_pragma=foreign_keys(1)"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
