// Package config loads the editor configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration.
type Config struct {
	Theme         string   `toml:"theme"`          // UI theme (dark, light)
	LabelsFile    string   `toml:"labels_file"`    // Path to the YAML label taxonomy (optional)
	DefaultLabels []string `toml:"default_labels"` // Fallback taxonomy when no labels file is set
	FPS           float64  `toml:"fps"`            // Frame rate for frame-count time marks
	SeekStep      float64  `toml:"seek_step"`      // Seconds moved per arrow-key seek

	Autosave AutosaveConfig `toml:"autosave"`
	Layout   LayoutConfig   `toml:"layout"`
}

// AutosaveConfig controls periodic project writes.
type AutosaveConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds"`
}

// LayoutConfig seeds the resizable shell layout. Sizes are percentages of
// the vertical axis for the player, track and result panes.
type LayoutConfig struct {
	Sizes            []float64 `toml:"sizes"`
	MinSizes         []float64 `toml:"min_sizes"`
	GutterThickness  float64   `toml:"gutter_thickness"`
	HandleThickness  float64   `toml:"handle_thickness"`
	DisabledDividers []int     `toml:"disabled_dividers"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme:    "dark",
		FPS:      30,
		SeekStep: 5,
		DefaultLabels: []string{
			"夜晚/第一晚",
			"夜晚/第二晚",
			"白天/发言",
			"白天/投票",
			"动作",
		},
		Autosave: AutosaveConfig{
			Enabled:         true,
			IntervalSeconds: 30,
		},
		Layout: LayoutConfig{
			Sizes:           []float64{40, 45, 15},
			MinSizes:        []float64{20, 25, 10},
			GutterThickness: 1,
			HandleThickness: 1,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "tapemark", "config.toml"), nil
}

// Load reads the config at path, falling back to defaults for a missing
// file. An empty path uses DefaultPath.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := Validate(&cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks the loaded configuration, repairing what has a safe
// default and rejecting what does not.
func Validate(cfg *Config) error {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.SeekStep <= 0 {
		cfg.SeekStep = 5
	}
	if cfg.Autosave.IntervalSeconds <= 0 {
		cfg.Autosave.IntervalSeconds = 30
	}
	if len(cfg.Layout.Sizes) == 0 {
		cfg.Layout = Default().Layout
	}
	// The editor lays out exactly three panes (player, tracks, results).
	if len(cfg.Layout.Sizes) != 3 {
		return fmt.Errorf("layout: %d sizes, want 3 (player, tracks, results)", len(cfg.Layout.Sizes))
	}
	if len(cfg.Layout.Sizes) != len(cfg.Layout.MinSizes) {
		return fmt.Errorf("layout: %d sizes but %d min_sizes", len(cfg.Layout.Sizes), len(cfg.Layout.MinSizes))
	}
	var sum float64
	for _, s := range cfg.Layout.Sizes {
		sum += s
	}
	if sum < 100-1e-3 || sum > 100+1e-3 {
		return fmt.Errorf("layout: sizes sum to %.2f, want 100", sum)
	}
	return nil
}
