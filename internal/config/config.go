// Package config provides configuration for the application
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Sessions  SessionsConfig
	// APIKey protects maintenance endpoints; they are not registered when it is empty
	APIKey string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
	// MaxUploadSize is the maximum request body size in bytes
	MaxUploadSize int64
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds per-IP rate limit settings
type RateLimitConfig struct {
	RequestsPerMinute int
}

// SessionsConfig holds catalog session settings
type SessionsConfig struct {
	// TTL is the idle time after which a session is cleaned
	TTL time.Duration
	// EvictInterval is the period of the in-memory idle session eviction
	EvictInterval time.Duration
}

// Load reads configuration from environment variables.
//
// A .env file in the working directory is loaded first when it exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	cfg.Server.Port, err = intFromEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	maxUploadMB, err := intFromEnv("MAX_UPLOAD_SIZE_MB", 20)
	if err != nil {
		return nil, err
	}
	if maxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE_MB must be positive")
	}
	cfg.Server.MaxUploadSize = int64(maxUploadMB) << 20

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// Rate limit configuration
	cfg.RateLimit.RequestsPerMinute, err = intFromEnv("RATE_LIMIT_PER_MINUTE", 100)
	if err != nil {
		return nil, err
	}

	// Sessions configuration
	ttl := os.Getenv("SESSION_TTL")
	if ttl == "" {
		ttl = "168h"
	}
	cfg.Sessions.TTL, err = time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.Sessions.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	evictInterval := os.Getenv("SESSION_EVICT_INTERVAL")
	if evictInterval == "" {
		evictInterval = "10m"
	}
	cfg.Sessions.EvictInterval, err = time.ParseDuration(evictInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EVICT_INTERVAL: %w", err)
	}
	if cfg.Sessions.EvictInterval <= 0 {
		return nil, fmt.Errorf("SESSION_EVICT_INTERVAL must be positive")
	}

	cfg.APIKey = os.Getenv("API_KEY")

	return cfg, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

// parseOrigins splits comma-separated origins, allowing all origins when none is given
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for origin := range strings.SplitSeq(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		// Default to allow all origins (for development)
		return []string{"*"}
	}
	return origins
}
