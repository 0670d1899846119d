// Package config reads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultDriver    = "file"
	DefaultPort      = "8080"
	DefaultRateLimit = 100
	DefaultLogLevel  = "info"
)

var defaultPaths = map[string]string{
	"file":   "data/habits.json",
	"sqlite": "data/habits.db",
	"memory": "",
}

type Config struct {
	StoreDriver string
	StorePath   string
	Port        string

	// RedisHost empty means: no cache, no rate limiting.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// RateLimit is requests per minute per client IP.
	RateLimit int
	LogLevel  string
}

func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// Load reads an optional .env file, then the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// Existing variables win over .env entries.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := Config{
		StoreDriver:   getEnv("STORE_DRIVER", DefaultDriver),
		StorePath:     os.Getenv("STORE_PATH"),
		Port:          getEnv("PORT", DefaultPort),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      getEnv("LOG_LEVEL", DefaultLogLevel),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", DefaultRateLimit); err != nil {
		return Config{}, err
	}

	if cfg.StorePath == "" {
		cfg.StorePath = defaultPaths[cfg.StoreDriver]
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, ok := defaultPaths[c.StoreDriver]; !ok {
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreDriver != "memory" && c.StorePath == "" {
		return fmt.Errorf("config: STORE_PATH is required for driver %q", c.StoreDriver)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("config: RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config: REDIS_DB must not be negative, got %d", c.RedisDB)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, v)
	}
	return n, nil
}
