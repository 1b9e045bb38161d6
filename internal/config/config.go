package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
}

// APIConfig represents backend connection configuration
type APIConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Timeout  string `mapstructure:"timeout"`
}

// HolidaysConfig represents the holiday data sources. The holiday set is
// literal configuration data, scoped per year; keep it in an external file
// (or inline dates) so a new year does not require a rebuild.
type HolidaysConfig struct {
	File  string   `mapstructure:"file"`
	Dates []string `mapstructure:"dates"`
}

// SessionConfig represents session token storage configuration
type SessionConfig struct {
	TokenFile string `mapstructure:"token_file"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.vacation-tracker")
		v.AddConfigPath("/etc/vacation-tracker")
	}

	// Read environment variables
	v.SetEnvPrefix("VACATION_TRACKER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return fmt.Errorf("api.endpoint is required")
	}

	if c.API.Timeout != "" {
		if _, err := time.ParseDuration(c.API.Timeout); err != nil {
			return fmt.Errorf("api.timeout is not a valid duration: %w", err)
		}
	}

	if c.Holidays.File != "" && len(c.Holidays.Dates) > 0 {
		return fmt.Errorf("holidays.file and holidays.dates are mutually exclusive")
	}

	return nil
}

// GetTimeout returns the request timeout duration
func (c *APIConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 30 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}

// GetTokenFile returns the session token file path, defaulting to
// ~/.vacation-tracker/token
func (c *SessionConfig) GetTokenFile() string {
	if c.TokenFile != "" {
		return os.ExpandEnv(c.TokenFile)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".vacation-tracker-token"
	}
	return filepath.Join(home, ".vacation-tracker", "token")
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.API.Endpoint = os.ExpandEnv(c.API.Endpoint)
	c.Holidays.File = os.ExpandEnv(c.Holidays.File)
}
