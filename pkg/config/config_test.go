package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_PORT", "DB_DRIVER", "JWT_TTL", "COOKIE_SECURE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.DBDriver)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %s", cfg.JWTTTL)
	}
	if cfg.CookieSecure {
		t.Fatal("expected insecure cookies by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("APP_ENV", "production")

	cfg := Load()
	if cfg.HTTPPort != 9090 || cfg.DBDriver != DriverPostgres || cfg.JWTTTL != 90*time.Minute || !cfg.CookieSecure {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production")
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("JWT_TTL", "-5m")

	cfg := Load()
	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected fallback port, got %d", cfg.HTTPPort)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("expected fallback ttl, got %s", cfg.JWTTTL)
	}
}
