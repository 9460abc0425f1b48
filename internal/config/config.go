// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Database
	DatabasePath string

	// Remote APIs
	ExchangeEndpoint string
	TipsEndpoint     string
	HTTPTimeout      time.Duration

	// Logging
	LogFormat string
	Debug     bool
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	// A missing .env file is fine, the environment alone is enough.
	_ = godotenv.Load()

	return &Config{
		DatabasePath: getEnv("DATABASE_PATH", filepath.Join("data", "spendwise.db")),

		ExchangeEndpoint: getEnv("EXCHANGE_ENDPOINT", "https://open.er-api.com/v6/latest"),
		TipsEndpoint:     getEnv("TIPS_ENDPOINT", "https://api.quotable.io/random"),
		HTTPTimeout:      getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		LogFormat: getEnv("LOG_FORMAT", ""),
		Debug:     getEnvBool("DEBUG", false),
	}
}

// Validate returns an error describing every invalid setting.
func (c *Config) Validate() error {
	var errors []string

	if c.DatabasePath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	for _, endpoint := range []string{c.ExchangeEndpoint, c.TipsEndpoint} {
		parsed, err := url.Parse(endpoint)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid endpoint '%s': %v", endpoint, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid endpoint scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 1 minute", c.HTTPTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SetupLogging configures the global logger.
//
// Log format can be explicitly set. If it is not set, it defaults to human
// readable in debug mode and JSON otherwise.
func (c *Config) SetupLogging() {
	output := io.Writer(os.Stdout)
	if (c.LogFormat == "" && c.Debug) || c.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if c.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// EnsureDataDir creates the directory the database file lives in.
func (c *Config) EnsureDataDir() error {
	dir := filepath.Dir(c.DatabasePath)
	if dir == "." || dir == "" {
		return nil
	}

	return os.MkdirAll(dir, os.ModePerm)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
