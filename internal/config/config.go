// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the job board API.
type Config struct {
	Port                 string
	DatabaseURL          string
	RedisURL             string
	AdzunaAppID          string
	AdzunaAppKey         string
	AdzunaCountry        string // e.g. "us", "gb", "fr"
	RefreshIntervalHours int    // How often the cron refresh fires
}

// Load reads environment variables and returns a validated Config.
//
// Adzuna credentials are intentionally not required here: the Adzuna client
// enforces them at construction, and the server can still serve stored jobs
// without a working provider.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	interval := 6
	if s := os.Getenv("REFRESH_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("REFRESH_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	country := os.Getenv("ADZUNA_COUNTRY")
	if country == "" {
		country = "us"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             redisURL,
		AdzunaAppID:          os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:         os.Getenv("ADZUNA_APP_KEY"),
		AdzunaCountry:        country,
		RefreshIntervalHours: interval,
	}, nil
}
