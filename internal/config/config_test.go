package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("DEMO_ACCESS_CODE", "")
	t.Setenv("LEDGER_OPENING_RESERVE", "")
	t.Setenv("TRACING_ENABLED", "")
	t.Setenv("COLLECT_ON_START", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DataDir != "./data" {
		t.Fatalf("expected default data dir, got %s", cfg.DataDir)
	}
	if cfg.SQLitePath != filepath.Join("./data", "analytics.db") {
		t.Fatalf("expected sqlite path under data dir, got %s", cfg.SQLitePath)
	}
	if cfg.JWTSecret != devJWTSecret {
		t.Fatal("expected built-in dev secret when JWT_SECRET unset")
	}
	if cfg.AdminUsername != "admin" || cfg.AdminPassword != "birdai2025" || cfg.DemoAccessCode != "earlybird" {
		t.Fatalf("unexpected auth defaults: %+v", cfg)
	}
	if cfg.LedgerOpeningReserve != 1_000_000 {
		t.Fatalf("expected opening reserve 1000000, got %v", cfg.LedgerOpeningReserve)
	}
	if cfg.TracingEnabled {
		t.Fatal("tracing should default off")
	}
	if !cfg.CollectOnStart {
		t.Fatal("startup collection should default on")
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_DIR", "/tmp/birdai")
	t.Setenv("SQLITE_PATH", "/tmp/birdai/custom.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LEDGER_OPENING_RESERVE", "2500000")
	t.Setenv("TRACING_ENABLED", "TRUE")
	t.Setenv("COLLECT_ON_START", "false")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DataDir != "/tmp/birdai" || cfg.SQLitePath != "/tmp/birdai/custom.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("expected JWT secret from env, got %s", cfg.JWTSecret)
	}
	if cfg.LedgerOpeningReserve != 2_500_000 {
		t.Fatalf("expected opening reserve 2500000, got %v", cfg.LedgerOpeningReserve)
	}
	if !cfg.TracingEnabled {
		t.Fatal("expected tracing enabled")
	}
	if cfg.CollectOnStart {
		t.Fatal("expected startup collection disabled")
	}

	t.Setenv("LEDGER_OPENING_RESERVE", "bad")
	cfg = Load()
	if cfg.LedgerOpeningReserve != 1_000_000 {
		t.Fatalf("invalid reserve should fall back to default, got %v", cfg.LedgerOpeningReserve)
	}
}
