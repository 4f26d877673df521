package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const prodString = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	MetricsAddr  string

	DBDSN string

	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	MaxBookingHours int

	RedisAddr            string
	AvailabilityCacheTTL time.Duration

	StorageDir string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := &Config{}

	// Production origins (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == prodString

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Prometheus listen address (default: empty, metrics endpoint disabled)
	cfg.MetricsAddr = getEnv("METRICS_ADDR", "")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parsed as time.Duration (e.g. "15m", "1h").
	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Longest booking a single reservation may cover, in hours (default: 3)
	cfg.MaxBookingHours, err = getEnvAsInt("MAX_BOOKING_HOURS", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_BOOKING_HOURS: %w", err)
	}
	if cfg.MaxBookingHours < 1 {
		return nil, fmt.Errorf("MAX_BOOKING_HOURS must be at least 1")
	}

	// Redis address (default: empty, availability caching disabled)
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")

	cacheTTL, err := time.ParseDuration(getEnv("AVAILABILITY_CACHE_TTL", "2m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AVAILABILITY_CACHE_TTL: %w", err)
	}
	cfg.AvailabilityCacheTTL = cacheTTL

	// Local blob storage root for turf photos (default: ./data)
	cfg.StorageDir = getEnv("STORAGE_DIR", "./data")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}
	return val, nil
}
