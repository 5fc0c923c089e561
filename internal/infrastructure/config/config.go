package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all backend configuration.
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Workspace WorkspaceConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// DataConfig holds on-disk state configuration.
type DataConfig struct {
	// Dir is the data root: sessions, templates, workspace files
	Dir string `envconfig:"DATA_DIR" default:"./data"`
	// SeedDir holds YAML template definitions loaded on startup
	SeedDir string `envconfig:"TEMPLATE_SEED_DIR" default:"./seeds"`
}

// WorkspaceConfig holds initial deck dimensions, used until the
// first viewport report arrives from a client.
type WorkspaceConfig struct {
	Width  int `envconfig:"WORKSPACE_WIDTH" default:"1280"`
	Height int `envconfig:"WORKSPACE_HEIGHT" default:"720"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Data: DataConfig{
			Dir:     "./data",
			SeedDir: "./seeds",
		},
		Workspace: WorkspaceConfig{
			Width:  1280,
			Height: 720,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
