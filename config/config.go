// Package config loads service configuration.
//
// Values are resolved in this order, later ones winning:
//  1. built-in defaults
//  2. the YAML file named by $AUDIT_CONFIG, if set
//  3. environment variables (a .env file in the working directory is loaded first)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port     string `yaml:"port"`
	UseHTTPS bool   `yaml:"use_https"`
}

// DatabaseConfig holds the SQLite location
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig holds OpenID Connect settings. Login is disabled when Domain is empty.
type AuthConfig struct {
	Provider     string `yaml:"provider"` // "auth0" or "oidc"
	Domain       string `yaml:"domain"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	CallbackURL  string `yaml:"callback_url"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// Enabled reports whether a login provider is configured
func (a AuthConfig) Enabled() bool {
	return a.Domain != ""
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Path: "audit_trail.db"},
		Auth:     AuthConfig{Provider: "auth0"},
		Log:      LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads .env, the optional YAML file and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("AUDIT_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.UseHTTPS = getEnvBool("USE_HTTPS", c.Server.UseHTTPS)
	c.Database.Path = getEnv("DATABASE_PATH", c.Database.Path)
	c.Auth.Provider = getEnv("AUTH_PROVIDER", c.Auth.Provider)
	c.Auth.Domain = getEnv("AUTH_DOMAIN", c.Auth.Domain)
	c.Auth.ClientID = getEnv("AUTH_CLIENT_ID", c.Auth.ClientID)
	c.Auth.ClientSecret = getEnv("AUTH_CLIENT_SECRET", c.Auth.ClientSecret)
	c.Auth.CallbackURL = getEnv("AUTH_CALLBACK_URL", c.Auth.CallbackURL)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}

	if c.Auth.Enabled() {
		switch c.Auth.Provider {
		case "auth0", "oidc":
		default:
			return fmt.Errorf("unknown auth provider %q", c.Auth.Provider)
		}
		if c.Auth.ClientID == "" || c.Auth.ClientSecret == "" || c.Auth.CallbackURL == "" {
			return errors.New("auth client ID, secret and callback URL are required when auth domain is set")
		}
	}

	return nil
}

// NewLogger builds the logger described by the log settings
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if c.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
