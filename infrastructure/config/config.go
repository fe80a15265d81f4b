// Package config loads the application configuration: built-in defaults,
// then an optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	domainconfig "archibridge/domain/config"
	"archibridge/pkg/utils"
)

// FileEnvVar names the YAML file to load when no path is given
const FileEnvVar = "ARCHIBRIDGE_CONFIG"

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	CSV       CSVConfig       `yaml:"csv"`
	Images    ImagesConfig    `yaml:"images"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Workspace WorkspaceConfig `yaml:"workspace"`

	// LoadedFrom lists the sources applied, in order
	LoadedFrom []string `yaml:"-"`
}

// ServerConfig configures the REST API
type ServerConfig struct {
	Address         string        `yaml:"address" validate:"required"`
	Environment     string        `yaml:"environment" validate:"oneof=development staging production"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// RateLimit is the request budget per client IP and minute; 0 disables it
	RateLimit int        `yaml:"rate_limit" validate:"gte=0"`
	Auth      AuthConfig `yaml:"auth"`
}

// AuthConfig configures bearer-token authentication
type AuthConfig struct {
	Enabled   bool   `yaml:"enabled"`
	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`
}

// LoggingConfig configures zap
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// CSVConfig holds the default CSV import and export options
type CSVConfig struct {
	Prefix              string `yaml:"prefix" validate:"max=128"`
	Delimiter           string `yaml:"delimiter"`
	Encoding            string `yaml:"encoding"`
	WriteHeader         bool   `yaml:"write_header"`
	StripNewLines       bool   `yaml:"strip_newlines"`
	UseLeadingCharsHack bool   `yaml:"leading_chars_hack"`
}

// ImagesConfig configures the image store
type ImagesConfig struct {
	FeaturePrefix string `yaml:"feature_prefix" validate:"required,endswith=/"`
	MaxBytes      int64  `yaml:"max_bytes" validate:"gt=0"`
}

// MetricsConfig configures the Prometheus collector
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// WorkspaceConfig configures the open-model workspace
type WorkspaceConfig struct {
	UndoLimit int           `yaml:"undo_limit" validate:"gte=0"`
	IdleTTL   time.Duration `yaml:"idle_ttl"`
}

// Default returns the built-in configuration
func Default() *Config {
	domain := domainconfig.DefaultDomainConfig()
	return &Config{
		Server: ServerConfig{
			Address:         ":8080",
			Environment:     "development",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 15 * time.Second,
			RateLimit:       600,
			Auth:            AuthConfig{JWTIssuer: "archibridge"},
		},
		Logging: LoggingConfig{Level: "info"},
		CSV: CSVConfig{
			Delimiter:   ",",
			Encoding:    "UTF-8",
			WriteHeader: true,
		},
		Images: ImagesConfig{
			FeaturePrefix: domain.ImageFeaturePrefix,
			MaxBytes:      domain.MaxImageBytes,
		},
		Metrics:   MetricsConfig{Enabled: true, Namespace: "archibridge"},
		Workspace: WorkspaceConfig{UndoLimit: 100, IdleTTL: 2 * time.Hour},
	}
}

// LoadConfig loads configuration from the file named by ARCHIBRIDGE_CONFIG
// (if any) and the environment
func LoadConfig() (*Config, error) {
	return Load(os.Getenv(FileEnvVar))
}

// Load applies defaults, then the YAML file at path when path is not empty,
// then environment variables, and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.LoadedFrom = append(cfg.LoadedFrom, "defaults")

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
		cfg.LoadedFrom = append(cfg.LoadedFrom, path)
	}

	cfg.loadEnvironmentVariables()
	cfg.LoadedFrom = append(cfg.LoadedFrom, "environment")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnvironmentVariables() {
	c.Server.Address = getEnv("SERVER_ADDRESS", c.Server.Address)
	c.Server.Environment = getEnv("ENVIRONMENT", c.Server.Environment)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.CORSOrigins = strings.Split(origins, ",")
	}
	c.Server.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.RateLimit = getEnvInt("RATE_LIMIT", c.Server.RateLimit)

	c.Server.Auth.Enabled = getEnvBool("AUTH_ENABLED", c.Server.Auth.Enabled)
	c.Server.Auth.JWTSecret = getEnv("JWT_SECRET", c.Server.Auth.JWTSecret)
	c.Server.Auth.JWTIssuer = getEnv("JWT_ISSUER", c.Server.Auth.JWTIssuer)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)

	c.CSV.Prefix = getEnv("CSV_PREFIX", c.CSV.Prefix)
	c.CSV.Delimiter = getEnv("CSV_DELIMITER", c.CSV.Delimiter)
	c.CSV.Encoding = getEnv("CSV_ENCODING", c.CSV.Encoding)
	c.CSV.WriteHeader = getEnvBool("CSV_WRITE_HEADER", c.CSV.WriteHeader)
	c.CSV.StripNewLines = getEnvBool("CSV_STRIP_NEWLINES", c.CSV.StripNewLines)
	c.CSV.UseLeadingCharsHack = getEnvBool("CSV_LEADING_CHARS_HACK", c.CSV.UseLeadingCharsHack)

	c.Images.FeaturePrefix = getEnv("IMAGE_FEATURE_PREFIX", c.Images.FeaturePrefix)
	c.Images.MaxBytes = int64(getEnvInt("IMAGE_MAX_BYTES", int(c.Images.MaxBytes)))

	c.Metrics.Enabled = getEnvBool("ENABLE_METRICS", c.Metrics.Enabled)
	c.Metrics.Namespace = getEnv("METRICS_NAMESPACE", c.Metrics.Namespace)

	c.Workspace.UndoLimit = getEnvInt("UNDO_LIMIT", c.Workspace.UndoLimit)
	c.Workspace.IdleTTL = getEnvDuration("WORKSPACE_IDLE_TTL", c.Workspace.IdleTTL)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	if c.Server.Auth.Enabled && c.Server.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when auth is enabled")
	}
	if c.IsProduction() && !c.Server.Auth.Enabled {
		return errors.New("auth must be enabled in production")
	}
	return c.Domain().Validate()
}

// Domain returns the domain rules derived from this configuration
func (c *Config) Domain() *domainconfig.DomainConfig {
	d := domainconfig.DefaultDomainConfig()
	d.ImageFeaturePrefix = c.Images.FeaturePrefix
	d.MaxImageBytes = c.Images.MaxBytes
	return d
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
