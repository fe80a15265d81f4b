package config

import (
	"fmt"
	"strings"
)

// DomainConfig holds the configurable rules of the model domain
type DomainConfig struct {
	// Image storage
	ImageFeaturePrefix string
	MaxImageBytes      int64

	// Identifiers
	SyntheticIDPrefix string

	// Model defaults
	DefaultModelName string
	DefaultViewName  string
	ModelVersion     string
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		ImageFeaturePrefix: "images/",
		MaxImageBytes:      32 << 20,

		SyntheticIDPrefix: "id-",

		DefaultModelName: "(new model)",
		DefaultViewName:  "Default View",
		ModelVersion:     "5.0.0",
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.ImageFeaturePrefix == "" {
		return fmt.Errorf("image feature prefix cannot be empty")
	}
	if !strings.HasSuffix(c.ImageFeaturePrefix, "/") {
		return fmt.Errorf("image feature prefix must end with '/': %q", c.ImageFeaturePrefix)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("max image bytes must be positive")
	}
	if c.SyntheticIDPrefix == "" {
		return fmt.Errorf("synthetic id prefix cannot be empty")
	}
	return nil
}
