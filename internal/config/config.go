// Package config loads the daemon configuration from
// ~/.config/deskhop/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/deskhop/deskhop/internal/overlay"
)

// Config is the daemon configuration.
type Config struct {
	// OverlayDurationMS is how long desktop indicators stay visible.
	OverlayDurationMS int `yaml:"overlay_duration_ms"`

	// OverlayInset is the pixel distance between an indicator and its
	// monitor's top-left corner.
	OverlayInset int `yaml:"overlay_inset"`

	// Notifications controls desktop notifications on action failures.
	// Default: true
	Notifications *bool `yaml:"notifications"`

	// Tray controls the system tray icon.
	// Default: true
	Tray *bool `yaml:"tray"`

	// LogLevel controls logging verbosity: debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		OverlayDurationMS: int(overlay.DefaultDuration / time.Millisecond),
		OverlayInset:      overlay.DefaultInset,
		LogLevel:          "info",
	}
}

// OverlayDuration returns the indicator lifetime as a duration.
func (c *Config) OverlayDuration() time.Duration {
	return time.Duration(c.OverlayDurationMS) * time.Millisecond
}

// NotificationsEnabled applies the default for an unset field.
func (c *Config) NotificationsEnabled() bool {
	if c.Notifications == nil {
		return true
	}
	return *c.Notifications
}

// TrayEnabled applies the default for an unset field.
func (c *Config) TrayEnabled() bool {
	if c.Tray == nil {
		return true
	}
	return *c.Tray
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.OverlayDurationMS < 0 {
		return fmt.Errorf("overlay_duration_ms must not be negative, got %d", c.OverlayDurationMS)
	}
	if c.OverlayDurationMS > 60000 {
		return fmt.Errorf("overlay_duration_ms must not exceed 60000, got %d", c.OverlayDurationMS)
	}
	if c.OverlayInset < 0 {
		return fmt.Errorf("overlay_inset must not be negative, got %d", c.OverlayInset)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "deskhop", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the configuration at path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
