package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MehmetMelik/steq/packages/model"
)

// Config represents the steq configuration
type Config struct {
	DefaultFormat   string `json:"defaultFormat,omitempty"`
	EnvironmentFile string `json:"environmentFile,omitempty"` // YAML environment
	EnvFile         string `json:"envFile,omitempty"`         // .env file
	EnvPrefix       string `json:"envPrefix,omitempty"`       // process variables with this prefix become template variables
	Timeout         int    `json:"timeout,omitempty"`         // milliseconds, for imported requests
	FollowRedirects *bool  `json:"followRedirects,omitempty"`
	MaxRedirects    int    `json:"maxRedirects,omitempty"`
	ApplyAuth       *bool  `json:"applyAuth,omitempty"`
	Verbose         *bool  `json:"verbose,omitempty"`
	NoColor         *bool  `json:"noColor,omitempty"`
}

// BoolPtr returns a pointer to b, for building overrides.
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetApplyAuth returns whether auth configs are written into exported
// requests, defaulting to false
func (c *Config) GetApplyAuth() bool {
	return getBool(c.ApplyAuth, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// RequestSettings returns the settings new requests start from.
func (c *Config) RequestSettings() model.RequestSettings {
	s := model.DefaultRequestSettings()
	if c.Timeout > 0 {
		s.TimeoutMs = uint64(c.Timeout)
	}
	s.FollowRedirects = c.GetFollowRedirects()
	if c.MaxRedirects > 0 {
		s.MaxRedirects = uint(c.MaxRedirects)
	}
	return s
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".steq.config.json",
	"steq.config.json",
	".steqrc",
	".steqrc.json",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c

	if other.DefaultFormat != "" {
		result.DefaultFormat = other.DefaultFormat
	}
	if other.EnvironmentFile != "" {
		result.EnvironmentFile = other.EnvironmentFile
	}
	if other.EnvFile != "" {
		result.EnvFile = other.EnvFile
	}
	if other.EnvPrefix != "" {
		result.EnvPrefix = other.EnvPrefix
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.MaxRedirects > 0 {
		result.MaxRedirects = other.MaxRedirects
	}

	// Boolean flags - only override if explicitly set in other config
	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.ApplyAuth != nil {
		result.ApplyAuth = other.ApplyAuth
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
