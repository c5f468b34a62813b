package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration, loaded from environment
// variables at startup.
type Config struct {
	MongoURI       string
	DBName         string
	CollectionName string
	Port           string
}

// Load reads configuration from the environment. MONGODB_URI is required;
// the remaining variables fall back to defaults.
func Load() (*Config, error) {
	uri := strings.TrimSpace(os.Getenv("MONGODB_URI"))
	if uri == "" {
		return nil, errors.New("missing required environment variable MONGODB_URI: set it to your MongoDB connection string")
	}

	cfg := &Config{
		MongoURI:       uri,
		DBName:         getenv("MONGODB_DB_NAME", "network_devices"),
		CollectionName: getenv("MONGODB_COLLECTION_NAME", "devices"),
		Port:           getenv("PORT", "3001"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (c *Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("PORT must be an integer, got %q", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
	}
	return nil
}
