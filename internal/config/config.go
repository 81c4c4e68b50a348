package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// PlacesConfig groups the settings of the Google Places integration.
type PlacesConfig struct {
	APIKey          string
	BaseURL         string
	DefaultLocation string
	DefaultRadius   int
	ResultLimit     int
	CacheTTL        time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL     string
	RedisURL        string
	JWTSecret       string
	Port            string
	Env             string
	LogLevel        string
	TokenTTL        time.Duration
	RateLimitPlaces RateLimitConfig
	Places          PlacesConfig
}

const (
	defaultPlacesURL      = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	defaultPlacesLocation = "Praha, Czech Republic"
)

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),
		Port:        getEnv("PORT", "8080"),
		Env:         strings.ToLower(getEnv("APP_ENV", "development")),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		TokenTTL:    parseDuration(getEnv("JWT_TTL", "24h")),
		Places: PlacesConfig{
			APIKey:          os.Getenv("GOOGLE_PLACES_API_KEY"),
			BaseURL:         getEnv("GOOGLE_PLACES_BASE_URL", defaultPlacesURL),
			DefaultLocation: getEnv("PLACES_DEFAULT_LOCATION", defaultPlacesLocation),
			DefaultRadius:   parseIntDefault(getEnv("PLACES_DEFAULT_RADIUS", "10000"), 10000),
			ResultLimit:     parseIntDefault(getEnv("PLACES_RESULT_LIMIT", "20"), 20),
		},
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_PLACES", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PLACES value: %w", err)
	}
	cfg.RateLimitPlaces = rl

	ttl, err := time.ParseDuration(getEnv("PLACES_CACHE_TTL", "10m"))
	if err != nil || ttl < 0 {
		return nil, fmt.Errorf("invalid PLACES_CACHE_TTL value: %q", os.Getenv("PLACES_CACHE_TTL"))
	}
	cfg.Places.CacheTTL = ttl

	return cfg, nil
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func parseIntDefault(input string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
