// Package config provides application configuration loaded from environment variables.
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

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Backup   BackupConfig
	Help     HelpConfig
	Log      LogConfig
	Session  SessionConfig
	App      AppConfig
}

// ServerConfig holds settings of the local API the desktop front end talks to.
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds the single-file store settings.
type DatabaseConfig struct {
	Path        string
	BusyTimeout int // milliseconds
	Debug       bool
}

// BackupConfig holds where backup copies are written.
type BackupConfig struct {
	Dir string
}

// HelpConfig holds the external help page.
type HelpConfig struct {
	URL string
}

// LogConfig holds logrus settings.
type LogConfig struct {
	Level  string
	Format string // text or json
}

// SessionConfig holds the cookie signing secret.
type SessionConfig struct {
	Secret string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev bool
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// InMemory reports whether the store is an in-memory database (tests).
func (d DatabaseConfig) InMemory() bool {
	return d.Path == ":memory:" || strings.Contains(d.Path, "mode=memory")
}

// DSN returns the go-sqlite3 connection string for Path.
func (d DatabaseConfig) DSN() string {
	if strings.HasPrefix(d.Path, "file:") || d.Path == ":memory:" {
		return appendParam(d.Path, "_busy_timeout", strconv.Itoa(d.BusyTimeout))
	}
	return appendParam("file:"+filepath.ToSlash(d.Path), "_busy_timeout", strconv.Itoa(d.BusyTimeout))
}

func appendParam(dsn, key, value string) string {
	if d, _ := url.ParseQuery(after(dsn, "?")); d.Has(key) {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s%s=%s", dsn, sep, key, value)
}

func after(s, sep string) string {
	if _, rest, ok := strings.Cut(s, sep); ok {
		return rest
	}
	return ""
}

// Load reads configuration from environment variables.
// It uses sensible defaults for a shop workstation.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("HOST", "127.0.0.1"),
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Path:        getEnv("DB_PATH", "computer_store.db"),
			BusyTimeout: getEnvInt("DB_BUSY_TIMEOUT", 5000),
			Debug:       getEnvBool("DB_DEBUG", false),
		},
		Backup: BackupConfig{
			Dir: getEnv("BACKUP_DIR", "backups"),
		},
		Help: HelpConfig{
			URL: getEnv("HELP_URL", "https://lolkakot.github.io/help_system/"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
		},
		App: AppConfig{
			Dev: getEnvBool("DEV", false),
		},
	}
}

// Timeout converts a seconds setting for http.Server.
func Timeout(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
