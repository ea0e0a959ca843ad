package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const devJWTSecret = "birdai-dev-secret-do-not-use-in-prod"

type Config struct {
	Port     string
	DataDir  string
	RedisURL string

	JWTSecret      string
	AdminUsername  string
	AdminPassword  string
	DemoAccessCode string

	SQLitePath string
	SuiRPCURL  string

	SnapshotCron  string
	SentimentCron string
	InsightCron   string

	LedgerOpeningReserve float64
	TracingEnabled       bool
	CollectOnStart       bool
}

func Load() *Config {
	cfg := &Config{
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		SuiRPCURL:     strings.TrimSpace(os.Getenv("SUI_RPC_URL")),
		SnapshotCron:  strings.TrimSpace(os.Getenv("SNAPSHOT_CRON")),
		SentimentCron: strings.TrimSpace(os.Getenv("SENTIMENT_CRON")),
		InsightCron:   strings.TrimSpace(os.Getenv("INSIGHT_CRON")),
	}

	cfg.Port = strings.TrimSpace(os.Getenv("PORT"))
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.DataDir = strings.TrimSpace(os.Getenv("DATA_DIR"))
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}

	cfg.SQLitePath = strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "analytics.db")
	}

	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set, using a built-in development secret")
		cfg.JWTSecret = devJWTSecret
	}

	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, market-data caching disabled")
	}

	cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "birdai2025"
	}
	cfg.DemoAccessCode = os.Getenv("DEMO_ACCESS_CODE")
	if cfg.DemoAccessCode == "" {
		cfg.DemoAccessCode = "earlybird"
	}

	cfg.LedgerOpeningReserve = 1_000_000
	if v := strings.TrimSpace(os.Getenv("LEDGER_OPENING_RESERVE")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
			cfg.LedgerOpeningReserve = n
		}
	}

	cfg.TracingEnabled = strings.EqualFold(strings.TrimSpace(os.Getenv("TRACING_ENABLED")), "true")
	cfg.CollectOnStart = !strings.EqualFold(strings.TrimSpace(os.Getenv("COLLECT_ON_START")), "false")

	return cfg
}
