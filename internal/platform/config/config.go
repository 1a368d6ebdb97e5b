package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string
	JWTSecret   string
	LockTTL     time.Duration

	WorkerPollInterval  time.Duration
	EnableLockSweeper   bool
	LockSweeperBatch    int
	RunMigrationsOnBoot bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "claimdesk"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LockTTL:     time.Duration(envInt("LOCK_TTL_MINUTES", 30)) * time.Minute,

		WorkerPollInterval:  time.Duration(envInt("WORKER_POLL_SECONDS", 60)) * time.Second,
		EnableLockSweeper:   envBool("ENABLE_LOCK_SWEEPER", true),
		LockSweeperBatch:    envInt("LOCK_SWEEPER_BATCH", 100),
		RunMigrationsOnBoot: envBool("RUN_MIGRATIONS_ON_BOOT", false),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
