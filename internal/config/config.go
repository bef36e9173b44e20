package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// InsecureDevSecret is the signing secret used when JWT_SECRET is unset in
// dev. Tokens signed with it are forgeable; Load refuses it outside dev.
const InsecureDevSecret = "amistapp-dev-secret"

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string
	// Auth / Security
	JWTSecret      string
	InsecureSecret bool // true when running on the dev fallback secret
	AccessTokenTTL time.Duration
	BcryptCost     int

	// Infrastructure
	DBAddr        string
	DBDebug       bool
	MigrationsDir string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	// .env is optional; system environment wins.
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: ":" + getEnv("PORT", "3000"),

		AccessTokenTTL: 24 * time.Hour,
		BcryptCost:     10,

		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		DBDebug:       getEnv("DB_DEBUG", "") == "true",

		HTTPReadTimeout:  getDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		HTTPIdleTimeout:  getDuration("HTTP_IDLE_TIMEOUT", time.Minute),
	}

	// Signing secret. An empty or known-default secret means anyone can
	// mint valid sessions, so it only passes in dev.
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == InsecureDevSecret {
		if cfg.Env != "dev" {
			return nil, fmt.Errorf("JWT_SECRET must be set to a non-default value when ENV=%s", cfg.Env)
		}
		cfg.JWTSecret = InsecureDevSecret
		cfg.InsecureSecret = true
	}

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	return fallback
}
