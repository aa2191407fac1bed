// Package config provides centralized configuration for the catalog tool.
// It loads settings from environment variables with defaults and validates
// them on startup so misconfiguration fails before the catalog is touched.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Catalog  CatalogConfig
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// CatalogConfig describes the course file and how its columns map to courses.
type CatalogConfig struct {
	// Path is the delimited course file (default: courses.csv)
	Path string `env:"CATALOG_PATH" default:"courses.csv"`

	// Separator is the single-byte cell separator (default: ,)
	Separator byte `env:"CATALOG_SEPARATOR" default:","`

	// IDColumn, TitleColumn and PrereqColumn name the header columns to read.
	// Empty means by position: 0, 1 and 2.
	IDColumn     string `env:"CATALOG_ID_COLUMN"`
	TitleColumn  string `env:"CATALOG_TITLE_COLUMN"`
	PrereqColumn string `env:"CATALOG_PREREQ_COLUMN"`

	// AmountColumn names the amount column. Empty leaves amounts at 0.
	AmountColumn string `env:"CATALOG_AMOUNT_COLUMN"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Enabled starts the JSON API next to the menu (default: false)
	Enabled bool `env:"SERVER_ENABLED" default:"false"`

	// Host is the interface to bind to (default: 127.0.0.1)
	Host string `env:"SERVER_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds settings for the optional PostgreSQL snapshot store.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Empty disables the store.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// Timeout bounds connecting and each snapshot write (default: 10s)
	Timeout time.Duration `env:"DB_TIMEOUT" default:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File receives logs while the terminal menu runs (default: catalog.log)
	File string `env:"LOG_FILE" default:"catalog.log"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// StoreEnabled reports whether a database URL was configured.
func (c *DatabaseConfig) StoreEnabled() bool {
	return c.URL != ""
}
