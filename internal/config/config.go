package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	applog "discipline/internal/log"
)

type Config struct {
	// Storage
	DataBackend  string
	DataDir      string
	SQLiteDBPath string

	// Calendar days are derived in this zone; empty means local time
	Timezone string

	// Logging
	LogLevel string

	// AMQP change notifications, disabled when AMQPURL is empty
	AMQPURL            string
	AMQPExchange       string
	AMQPRoutingKey     string
	AMQPPublishTimeout time.Duration
}

// Backends lists the accepted DATA_BACKEND values.
var Backends = []string{"memory", "file", "sqlite"}

func Load() *Config {
	return &Config{
		DataBackend:  getEnv("DATA_BACKEND", "file"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/discipline.db"),

		Timezone: getEnv("TIMEZONE", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AMQPURL:            getEnv("AMQP_URL", ""),
		AMQPExchange:       getEnv("AMQP_EXCHANGE", "discipline"),
		AMQPRoutingKey:     getEnv("AMQP_ROUTING_KEY", "daily_logs"),
		AMQPPublishTimeout: getEnvDuration("AMQP_PUBLISH_TIMEOUT", 5*time.Second),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	isValidBackend := false
	for _, backend := range Backends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, Backends))
	}

	if c.DataBackend == "file" && strings.TrimSpace(c.DataDir) == "" {
		errors = append(errors, "data directory cannot be empty when using file backend")
	}
	if c.DataBackend == "sqlite" && strings.TrimSpace(c.SQLiteDBPath) == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if _, err := c.Location(); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
		if c.AMQPPublishTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("invalid AMQP publish timeout %v: must be positive", c.AMQPPublishTimeout))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Location resolves Timezone, defaulting to local time.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// NotificationsEnabled reports whether change events should be published.
func (c *Config) NotificationsEnabled() bool {
	return c.AMQPURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
