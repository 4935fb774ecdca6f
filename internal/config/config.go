// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/alertkit/internal/alert"
	"github.com/jmylchreest/alertkit/internal/placement"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// Default configuration values. The terminal host measures in cells, so the
// default margin is one cell rather than the 15 pixels of a graphical host.
const (
	DefaultMargin      = 1
	DefaultMeasureMode = "cells"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "2s", "500ms", "1m", or integer milliseconds.
// A value of "0" or 0 removes the alert right away; use sticky to keep it.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '2s', '500ms', '1m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the alertkit configuration.
type Config struct {
	Alert     AlertConfig     `toml:"alert"`
	Theme     ThemeConfig     `toml:"theme"`
	Measure   MeasureConfig   `toml:"measure"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// AlertConfig holds the default send options.
type AlertConfig struct {
	Anchor        placement.Anchor `toml:"anchor"`         // nw, n, ne, w, center, e, sw, s, se
	Duration      Duration         `toml:"duration"`       // Time on screen
	Sticky        bool             `toml:"sticky"`         // Stay until dismissed, ignoring duration
	Margin        int              `toml:"margin"`         // Cells from the parent edge
	WidthFraction float64          `toml:"width_fraction"` // Alert width relative to the parent
}

// ThemeConfig selects the alert theme.
type ThemeConfig struct {
	Name  string `toml:"name"`  // Embedded theme or file in ThemesDir
	Watch bool   `toml:"watch"` // Hot-reload user theme files
}

// MeasureConfig selects how text width is measured.
type MeasureConfig struct {
	Mode string `toml:"mode"` // cells, runes
}

// ClipboardConfig holds clipboard settings (TUI only).
type ClipboardConfig struct {
	Command string `toml:"command"` // Auto-detected if empty
}

// ValidMeasureModes returns the accepted measure modes.
func ValidMeasureModes() []string {
	return []string{"cells", "runes"}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Alert: AlertConfig{
			Anchor:        alert.DefaultAnchor,
			Duration:      Duration(alert.DefaultDuration),
			Margin:        DefaultMargin,
			WidthFraction: alert.DefaultWidthFraction,
		},
		Theme: ThemeConfig{
			Name:  theme.DefaultThemeName,
			Watch: true,
		},
		Measure: MeasureConfig{
			Mode: DefaultMeasureMode,
		},
		Clipboard: ClipboardConfig{
			Command: "", // Auto-detect
		},
	}
}

// configHome returns XDG_CONFIG_HOME if set, otherwise ~/.config.
func configHome() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return dir
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home := configHome()
	if home == "" {
		return ""
	}
	return filepath.Join(home, "alertkit", "config.toml")
}

// ThemesDir returns the directory searched for user themes.
func ThemesDir() string {
	home := configHome()
	if home == "" {
		return ""
	}
	return filepath.Join(home, "alertkit", "themes")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Alert.Anchor.Valid() {
		return fmt.Errorf("%w %q, must be one of: %v", placement.ErrInvalidAnchor, string(c.Alert.Anchor), placement.Anchors())
	}

	if err := c.Options().Validate(); err != nil {
		return err
	}

	if c.Theme.Name == "" {
		return errors.New("theme name must not be empty")
	}

	if !slices.Contains(ValidMeasureModes(), c.Measure.Mode) {
		return fmt.Errorf("invalid measure mode %q, must be one of: %v", c.Measure.Mode, ValidMeasureModes())
	}

	return nil
}

// Options returns the configured defaults as alert send options.
func (c *Config) Options() alert.Options {
	return alert.Options{
		Anchor:        c.Alert.Anchor,
		Duration:      c.Alert.Duration.Duration(),
		Margin:        c.Alert.Margin,
		WidthFraction: c.Alert.WidthFraction,
		Sticky:        c.Alert.Sticky,
	}
}
