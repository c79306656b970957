// Package config provides configuration management for the FreeAgent CLI.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the FreeAgent public API.
const (
	DefaultBaseURL = "https://api.freeagent.com/v2"
	DefaultScope   = "full"
	DefaultEnvFile = ".env"
	DefaultTimeout = 30 * time.Second
)

// Config represents the application configuration.
type Config struct {
	OAuth   OAuthConfig
	BaseURL string
	EnvFile string
	Debug   bool
	Timeout time.Duration
	// HistoryDB is the SQLite file for the local call history.
	// Empty means the default under the user config directory.
	HistoryDB string
}

// OAuthConfig holds the FreeAgent OAuth application settings.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string
}

// Load loads configuration from environment variables.
// The env file (if it exists) is loaded first without overriding values
// already present in the process environment, so process env wins.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		OAuth: OAuthConfig{
			ClientID:     os.Getenv("FREEAGENT_OAUTH_ID"),
			ClientSecret: os.Getenv("FREEAGENT_OAUTH_SECRET"),
			RedirectURI:  os.Getenv("FREEAGENT_OAUTH_REDIRECT_URI"),
			Scope:        getEnvOrDefault("FREEAGENT_SCOPE", DefaultScope),
		},
		BaseURL:   getEnvOrDefault("FREEAGENT_API_URL", DefaultBaseURL),
		EnvFile:   envFile,
		Debug:     os.Getenv("DEBUG") == "true",
		Timeout:   DefaultTimeout,
		HistoryDB: os.Getenv("FREEAGENT_HISTORY_DB"),
	}

	return cfg, nil
}

// Validate checks that the OAuth application settings are present.
// All missing keys are reported in a single error.
func (c *Config) Validate() error {
	var missing []string

	checks := []struct {
		key   string
		value string
	}{
		{"FREEAGENT_OAUTH_ID", c.OAuth.ClientID},
		{"FREEAGENT_OAUTH_SECRET", c.OAuth.ClientSecret},
		{"FREEAGENT_OAUTH_REDIRECT_URI", c.OAuth.RedirectURI},
	}
	for _, check := range checks {
		if check.value == "" {
			missing = append(missing, check.key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s\nSet them in %s or as environment variables",
			strings.Join(missing, ", "), c.EnvFile)
	}

	return nil
}

// TokenEndpoint returns the OAuth2 token endpoint for the configured base URL.
func (c *Config) TokenEndpoint() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/token_endpoint"
}

// AuthEndpoint returns the OAuth2 authorization endpoint for the configured base URL.
func (c *Config) AuthEndpoint() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/approve_app"
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
