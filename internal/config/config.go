// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"telescan/internal/scanner"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Region    string `yaml:"region"`
		Leniency  string `yaml:"leniency"`
		Format    string `yaml:"format"`
		MaxTries  int    `yaml:"max_tries"`
		Verbose   bool   `yaml:"verbose"`
		NoColor   bool   `yaml:"no_color"`
		Recursive bool   `yaml:"recursive"`
		ValidOnly bool   `yaml:"valid_only"`
	} `yaml:"defaults"`

	// Profiles for different scanning scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a scanning profile with specific settings
type Profile struct {
	Region      string `yaml:"region"`
	Leniency    string `yaml:"leniency"`
	Format      string `yaml:"format"`
	MaxTries    int    `yaml:"max_tries"`
	Verbose     bool   `yaml:"verbose"`
	NoColor     bool   `yaml:"no_color"`
	Recursive   bool   `yaml:"recursive"`
	ValidOnly   bool   `yaml:"valid_only"`
	Description string `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Region = "ZZ"
	config.Defaults.Leniency = "VALID"
	config.Defaults.Format = "text"
	config.Defaults.MaxTries = scanner.DefaultMaxTries

	// Add a default strict profile for audit-style runs
	config.Profiles["strict"] = Profile{
		Region:      "ZZ",
		Leniency:    "STRICT_GROUPING",
		Format:      "text",
		MaxTries:    scanner.DefaultMaxTries,
		ValidOnly:   true,
		Description: "Reports only valid, conventionally grouped numbers",
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	for _, candidate := range []string{
		"telescan.yaml",
		"telescan.yml",
		".telescan.yaml",
		".telescan.yml",
	} {
		if fileExists(candidate) {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		standard := filepath.Join(home, ".config", "telescan", "config.yaml")
		if fileExists(standard) {
			return standard
		}
	}
	return ""
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard
// locations when configFile is empty). If loading fails, it returns a default
// configuration so callers do not crash on a missing or bad config file.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// ValidateConfig checks that every leniency and budget the file names is sane
func ValidateConfig(config *Config) error {
	if _, err := scanner.ParseLeniency(config.Defaults.Leniency); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if config.Defaults.MaxTries < 0 {
		return fmt.Errorf("defaults: max_tries must not be negative")
	}
	for name, profile := range config.Profiles {
		if _, err := scanner.ParseLeniency(profile.Leniency); err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}
		if profile.MaxTries < 0 {
			return fmt.Errorf("profile %s: max_tries must not be negative", name)
		}
	}
	return nil
}

// ListProfiles returns the names of all defined profiles, sorted
func (c *Config) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetProfile returns the named profile, or nil if it does not exist
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
