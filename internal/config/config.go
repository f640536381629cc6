// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"energy-quote/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Wizard contains wizard/contract-run settings
	Wizard WizardConfig `json:"wizard"`

	// Templates contains template registry settings
	Templates TemplateConfig `json:"templates"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// WizardConfig contains wizard and contract-run settings
type WizardConfig struct {
	// MinQuestions is the lower bound for template/calculator validation
	MinQuestions int `json:"min_questions"`

	// MaxQuestions is the upper bound for template/calculator validation
	MaxQuestions int `json:"max_questions"`

	// FallbackElectricityRate is used when location intel omits a rate ($/kWh)
	FallbackElectricityRate float64 `json:"fallback_electricity_rate"`

	// FallbackDemandCharge is used when location intel omits one ($/kW)
	FallbackDemandCharge float64 `json:"fallback_demand_charge"`

	// VerboseSanityChecks logs every sanity-check warning individually.
	// The checks themselves always run; this only controls log volume.
	VerboseSanityChecks bool `json:"verbose_sanity_checks"`

	// DebugTrailLimit bounds the reducer's transition trail
	DebugTrailLimit int `json:"debug_trail_limit"`
}

// TemplateConfig contains template registry settings
type TemplateConfig struct {
	// Directory is an optional directory of .hcl template files loaded at
	// startup in addition to the built-in templates
	Directory string `json:"directory,omitempty"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Wizard: WizardConfig{
			MinQuestions:            1,
			MaxQuestions:            40,
			FallbackElectricityRate: 0.12,
			FallbackDemandCharge:    15,
			VerboseSanityChecks:     false,
			DebugTrailLimit:         50,
		},
		Templates: TemplateConfig{},
		Logging:   logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
