package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "logisticshub-dev-secret-change-me"

type Env struct {
	AppAddr  string
	GinMode  string
	LogLevel string

	DatabaseDSN string

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins []string

	CacheBackend string
	CacheTTL     time.Duration
	RedisAddr    string

	// Defaults for the dashboard; every request may override them.
	DriverTripRate     int64
	MonthlyPayrollCost int64
	FuelTaxPercent     int64
}

// LoadEnv reads .env (when present) and the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr:  envOr("APP_ADDR", ":8080"),
		GinMode:  strings.TrimSpace(os.Getenv("GIN_MODE")),
		LogLevel: envOr("LOG_LEVEL", "info"),

		DatabaseDSN: databaseDSN(),

		JWTSecret: envOr("JWT_SECRET", defaultJWTSecret),
		TokenTTL:  envDuration("TOKEN_TTL", 12*time.Hour),

		CORSOrigins: envList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),

		CacheBackend: strings.ToLower(envOr("CACHE_BACKEND", "memory")),
		CacheTTL:     envDuration("CACHE_TTL", 60*time.Second),
		RedisAddr:    envOr("REDIS_ADDRESS", "localhost:6379"),

		DriverTripRate:     envInt("DEFAULT_DRIVER_TRIP_RATE", 10000),
		MonthlyPayrollCost: envInt("DEFAULT_MONTHLY_PAYROLL_COST", 106012),
		FuelTaxPercent:     envInt("DEFAULT_FUEL_TAX_PERCENT", 19),
	}
}

// UsesDefaultSecret reports whether JWT_SECRET was left unset.
func (e Env) UsesDefaultSecret() bool {
	return e.JWTSecret == defaultJWTSecret
}

func databaseDSN() string {
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_DSN")); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		envOr("DB_USER", "root"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_HOST", "127.0.0.1"),
		envOr("DB_PORT", "3306"),
		envOr("DB_NAME", "logisticshub"),
	)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
