// Package config provides configuration loading for cineview. Values come
// from an optional YAML file layered over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration loaded from YAML.
type Config struct {
	Playback struct {
		// IntervalMs is the cine auto-advance period in milliseconds.
		IntervalMs int `yaml:"intervalMs"`
	} `yaml:"playback"`

	Display struct {
		// DefaultPreset is the window preset selected at startup.
		DefaultPreset string `yaml:"defaultPreset"`

		// DefaultTool is the pointer tool selected at startup.
		DefaultTool string `yaml:"defaultTool"`
	} `yaml:"display"`

	Export struct {
		// Dir receives exported PNG frames. Empty means the working directory.
		Dir string `yaml:"dir"`
	} `yaml:"export"`

	Series struct {
		// HUMin/HUMax define the Hounsfield range image-derived volumes
		// are mapped onto.
		HUMin float64 `yaml:"huMin"`
		HUMax float64 `yaml:"huMax"`
	} `yaml:"series"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Playback.IntervalMs = 100
	cfg.Display.DefaultPreset = "SoftTissue"
	cfg.Display.DefaultTool = "pan"
	cfg.Series.HUMin = -1000
	cfg.Series.HUMax = 1000
	return cfg
}

// DefaultPath returns the conventional config location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cineview", "config.yaml")
}

// LoadConfig loads configuration from a YAML file. A missing file yields
// the defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if cfg.Playback.IntervalMs <= 0 {
		cfg.Playback.IntervalMs = 100
	}
	if cfg.Series.HUMax <= cfg.Series.HUMin {
		cfg.Series.HUMin = -1000
		cfg.Series.HUMax = 1000
	}
	return cfg, nil
}
