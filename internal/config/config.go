// Package config loads the application configuration from a YAML file,
// with environment variable expansion and sane defaults so the server
// starts with no file at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Redis   RedisConfig   `yaml:"redis"`
	Share   ShareConfig   `yaml:"share"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Backend is "sqlite" or "bolt".
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// GeminiConfig configures the receipt-parsing model.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// RedisConfig configures the scan-result cache. An empty host disables
// caching.
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ShareConfig configures share-link signing.
type ShareConfig struct {
	Secret string `yaml:"secret"`
	// TTLHours is how long share links stay valid.
	TTLHours int `yaml:"ttl_hours"`
}

// Load reads the config file at configPath. A missing file yields the
// defaults; ${VAR} references in the file are expanded from the
// environment before parsing.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    "./data/receipts.db",
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  "gemini-2.5-flash",
		},
		Redis: RedisConfig{
			Port: 6379,
		},
		Share: ShareConfig{
			Secret:   os.Getenv("SHARE_SECRET"),
			TTLHours: 72,
		},
	}
}
