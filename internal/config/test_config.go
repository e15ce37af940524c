package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration from the .env file or environment variables for integration tests
// If .env file doesn't exist or environment variables are not set, returns a Config with empty values
// so that callers can skip database tests
func LoadTestConfig() (*Config, error) {
	// Try both possible paths, the file is optional
	_ = godotenv.Load("./../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	for key, target := range map[string]*string{
		"TEST_DB_HOST":     &cfg.Database.Host,
		"TEST_DB_USER":     &cfg.Database.User,
		"TEST_DB_PASSWORD": &cfg.Database.Password,
		"TEST_DB_NAME":     &cfg.Database.DBName,
	} {
		value := os.Getenv(key)
		if value == "" {
			return &Config{}, nil
		}
		*target = value
	}

	dbPortStr := os.Getenv("TEST_DB_PORT")
	if dbPortStr == "" {
		return &Config{}, nil
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	return cfg, nil
}

// IsDatabaseConfigured reports whether every database setting is present
func (c *Config) IsDatabaseConfigured() bool {
	return c.Database.Host != "" && c.Database.Port != 0 && c.Database.User != "" && c.Database.DBName != ""
}
