// Package config provides the YAML run configuration for the calendar
// generator and server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// StationInfo is the path to the station metadata CSV.
	StationInfo string `yaml:"station_info"`

	// TideStepMinutes is the tide curve sampling step.
	TideStepMinutes int `yaml:"tide_step_minutes"`

	// TideMarginHours extends the tide curve beyond the first and last
	// published event.
	TideMarginHours int `yaml:"tide_margin_hours"`

	// Output is the calendar JSON output path for the generator.
	Output string `yaml:"output"`

	// Listen is the HTTP listen address for the server.
	Listen string `yaml:"listen"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		StationInfo:     "data/station_info.csv",
		TideStepMinutes: 6,
		TideMarginHours: 3,
		Output:          "calendar.json",
		Listen:          "127.0.0.1:8080",
	}
}

// Normalize fills in missing/zero values so partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.StationInfo == "" {
		c.StationInfo = def.StationInfo
	}
	if c.TideStepMinutes <= 0 {
		c.TideStepMinutes = def.TideStepMinutes
	}
	if c.TideMarginHours <= 0 {
		c.TideMarginHours = def.TideMarginHours
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Listen == "" {
		c.Listen = def.Listen
	}
}

// TideStep returns the sampling step as a duration.
func (c *Config) TideStep() time.Duration {
	return time.Duration(c.TideStepMinutes) * time.Minute
}

// TideMargin returns the curve margin as a duration.
func (c *Config) TideMargin() time.Duration {
	return time.Duration(c.TideMarginHours) * time.Hour
}

// Load reads a YAML config file. A missing file yields the defaults; a
// present but unreadable or malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path from the command line.
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}
