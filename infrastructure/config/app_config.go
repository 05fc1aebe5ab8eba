package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sppages/database"
	"sppages/logging"
)

// AppConfig holds application-wide system configuration.
// SharePoint credentials are loaded separately by spauth.
type AppConfig struct {
	HTTPAddr        string
	HTTPLogPath     string
	PagesLibrary    string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	Database        *database.Config
	Logging         *logging.Config
}

// LoadAppConfigFromEnv loads complete application configuration from environment variables.
func LoadAppConfigFromEnv() *AppConfig {
	return &AppConfig{
		HTTPAddr:        getEnvWithDefault("HTTP_ADDR", ":8080"),
		HTTPLogPath:     getEnvWithDefault("HTTP_LOG_PATH", ""),
		PagesLibrary:    getEnvWithDefault("SP_PAGES_LIBRARY", "Site Pages"),
		RequestTimeout:  getEnvDurationWithDefault("SP_REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDurationWithDefault("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		Database:        LoadDatabaseConfigFromEnv(),
		Logging:         LoadLoggingConfigFromEnv(),
	}
}

// Validate implements validation.Validatable.
func (c *AppConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HTTPAddr, validation.Required),
		validation.Field(&c.PagesLibrary, validation.Required),
		validation.Field(&c.RequestTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.ShutdownTimeout, validation.Min(time.Second)),
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.Logging, validation.Required),
	)
}

// LoadDatabaseConfigFromEnv loads database configuration from environment variables.
func LoadDatabaseConfigFromEnv() *database.Config {
	return &database.Config{
		Path:              getEnvWithDefault("DB_PATH", "./sppages.db"),
		MaxOpenConns:      getEnvIntWithDefault("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:      getEnvIntWithDefault("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:   getEnvDurationWithDefault("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime:   getEnvDurationWithDefault("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
		BusyTimeoutMs:     getEnvIntWithDefault("DB_BUSY_TIMEOUT_MS", 5000),
		EnableForeignKeys: getEnvBoolWithDefault("DB_ENABLE_FOREIGN_KEYS", true),
		EnableWAL:         getEnvBoolWithDefault("DB_ENABLE_WAL", true),
	}
}

// LoadLoggingConfigFromEnv loads logging configuration from environment variables.
func LoadLoggingConfigFromEnv() *logging.Config {
	return &logging.Config{
		Level:      getEnvWithDefault("LOG_LEVEL", "info"),
		Format:     getEnvWithDefault("LOG_FORMAT", "json"),
		Output:     getEnvWithDefault("LOG_OUTPUT", "stdout"),
		MaxSizeMB:  getEnvIntWithDefault("LOG_MAX_SIZE_MB", 10),
		MaxBackups: getEnvIntWithDefault("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: getEnvIntWithDefault("LOG_MAX_AGE_DAYS", 28),
		Compress:   getEnvBoolWithDefault("LOG_COMPRESS", true),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(v string, def bool) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// Helper functions for environment variable parsing.
func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return parseBool(value, defaultValue)
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
