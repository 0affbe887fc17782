package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Ledger backend selection
	DataBackend string

	// Google Sheets
	GoogleSpreadsheetID string
	GoogleSheetName     string
	GoogleSheetRange    string

	// SQLite
	SQLiteDBPath string

	// Snapshot cache
	SnapshotTTL time.Duration

	// AMQP refresh channel (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Dashboard auth
	DashboardUsername string
	DashboardPassword string
	SessionSecret     string
	SessionTTL        time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8082"),

		DataBackend: getEnv("DATA_BACKEND", "memory"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Baile"),
		GoogleSheetRange:    getEnv("GOOGLE_SHEET_RANGE", "A:Z"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/baile.db"),

		SnapshotTTL: getEnvDuration("SNAPSHOT_TTL", 5*time.Minute),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "baile"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_refresh"),

		DashboardUsername: getEnv("DASHBOARD_USERNAME", "admin"),
		DashboardPassword: getEnv("DASHBOARD_PASSWORD", ""),
		SessionSecret:     getEnv("SESSION_SECRET", ""),
		SessionTTL:        getEnvDuration("SESSION_TTL", 12*time.Hour),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "sheets", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate Google Sheets configuration if backend is sheets
	if c.DataBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using sheets backend")
		}
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate snapshot cache TTL
	if c.SnapshotTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid snapshot TTL %v: must be at least 1 second", c.SnapshotTTL))
	} else if c.SnapshotTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid snapshot TTL %v: must be at most 24 hours", c.SnapshotTTL))
	}

	// The dashboard is gated by a single static credential pair; an empty
	// password disables the gate, acceptable only for local development.
	if c.DashboardPassword != "" {
		if c.DashboardUsername == "" {
			errors = append(errors, "dashboard username cannot be empty when a password is set")
		}
		if c.SessionSecret == "" {
			errors = append(errors, "session secret is required when dashboard auth is enabled")
		} else if len(c.SessionSecret) < 16 {
			errors = append(errors, "session secret must be at least 16 characters")
		}
		if c.SessionTTL < time.Minute {
			errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// AuthEnabled reports whether the static-credential gate is active.
func (c *Config) AuthEnabled() bool {
	return c.DashboardPassword != ""
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
