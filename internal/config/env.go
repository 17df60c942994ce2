package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// loads server configuration from the environment (and an optional .env file)
func LoadEnvironmentVariables() (*Config, error) {
	loadDotEnv()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loads trigger consumer configuration from the environment (and an optional .env file)
func LoadTriggerEnvironment() (*TriggerConfig, error) {
	loadDotEnv()

	var cfg TriggerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %s", cfg.PollInterval)
	}

	return &cfg, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}
}

// checks cross-field constraints
func (c *Config) Validate() error {
	if c.StorageURL == "" {
		return fmt.Errorf("STORAGE_URL environment variable is required")
	}

	if c.SessionTimeoutWindow <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT_WINDOW must be positive, got %s", c.SessionTimeoutWindow)
	}

	// a session must be outside every window before it can be archived
	if c.ArchiveAfter < c.SessionTimeoutWindow {
		return fmt.Errorf("ARCHIVE_AFTER (%s) must be at least SESSION_TIMEOUT_WINDOW (%s)",
			c.ArchiveAfter, c.SessionTimeoutWindow)
	}

	return nil
}
