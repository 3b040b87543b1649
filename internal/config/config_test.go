package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DB_DRIVER", "DATABASE_DSN", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, "sqlite")
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DATABASE_DSN", "user:pw@tcp(db:3306)/spendtrack?parseTime=true")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.DBDriver != "mysql" {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, "mysql")
	}
	if cfg.DatabaseDSN != "user:pw@tcp(db:3306)/spendtrack?parseTime=true" {
		t.Errorf("unexpected DatabaseDSN %q", cfg.DatabaseDSN)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "test-secret")
	}
}

func TestDefaultDSNPerDriver(t *testing.T) {
	if dsn := defaultDSN("mysql"); dsn == "" || dsn == defaultDSN("sqlite") {
		t.Errorf("mysql and sqlite defaults should differ, got %q", dsn)
	}
}
