package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds server configuration loaded from environment variables.
type Config struct {
	Port          string
	SyncSecret    string
	AllowedOrigin string

	// Rolling per-minute ceilings, per client
	SyncRatePerMinute int
	ReadRatePerMinute int

	// Quote gateway
	RateAPIBaseURL  string
	PriceAPIBaseURL string
	FallbackTHBRate decimal.Decimal
	QuoteTTL        time.Duration
}

// New creates a server configuration from environment variables.
func New() *Config {
	return &Config{
		Port:              getEnv("SERVER_PORT", "8080"),
		SyncSecret:        getEnv("SYNC_PASSWORD", ""),
		AllowedOrigin:     getEnv("FRONTEND_URL", "*"),
		SyncRatePerMinute: getEnvInt("SYNC_RATE_PER_MINUTE", 10),
		ReadRatePerMinute: getEnvInt("READ_RATE_PER_MINUTE", 60),
		RateAPIBaseURL:    getEnv("RATE_API_URL", "https://api.exchangerate-api.com/v4/latest"),
		PriceAPIBaseURL:   getEnv("PRICE_API_URL", "https://api.coingecko.com/api/v3"),
		FallbackTHBRate:   getEnvDecimal("FALLBACK_THB_RATE", decimal.NewFromFloat(33.5)),
		QuoteTTL:          getEnvDuration("QUOTE_TTL", time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
