// Package config loads experiment configuration for the session engine.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fitts-data/pointer.report/internal/session"
)

// ExperimentConfig is the on-disk configuration for a session. Fields
// omitted from the JSON file fall back to the engine defaults through
// the Get* accessors, so partial configs are safe. Out-of-range values
// are likewise replaced with defaults rather than treated as fatal.
type ExperimentConfig struct {
	Trials            *int      `json:"trials,omitempty"`
	SampleIntervalSec *float64  `json:"min_sample_interval_sec,omitempty"`
	Mode              *string   `json:"experiment_mode,omitempty"` // "random" or "preset"
	CanvasWidth       *float64  `json:"canvas_width,omitempty"`
	CanvasHeight      *float64  `json:"canvas_height,omitempty"`
	TargetRadius      *float64  `json:"target_default_radius,omitempty"`
	PresetDistances   []float64 `json:"preset_distances,omitempty"`
	PresetWidths      []float64 `json:"preset_widths,omitempty"`
}

// EmptyExperimentConfig returns a config with all fields unset.
func EmptyExperimentConfig() *ExperimentConfig {
	return &ExperimentConfig{}
}

// LoadExperimentConfig loads an ExperimentConfig from a JSON file.
func LoadExperimentConfig(path string) (*ExperimentConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyExperimentConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate rejects values that cannot be substituted with a default,
// currently just non-positive preset design values.
func (c *ExperimentConfig) Validate() error {
	for _, d := range c.PresetDistances {
		if d <= 0 {
			return fmt.Errorf("preset_distances must be positive, got %f", d)
		}
	}
	for _, w := range c.PresetWidths {
		if w <= 0 {
			return fmt.Errorf("preset_widths must be positive, got %f", w)
		}
	}
	return nil
}

// GetTrials returns the trial count or the default.
func (c *ExperimentConfig) GetTrials() int {
	if c.Trials == nil || *c.Trials <= 0 {
		return session.DefaultTrials
	}
	return *c.Trials
}

// GetSampleInterval returns the minimum sample interval in seconds or
// the default.
func (c *ExperimentConfig) GetSampleInterval() float64 {
	if c.SampleIntervalSec == nil || *c.SampleIntervalSec <= 0 {
		return session.DefaultSampleInterval
	}
	return *c.SampleIntervalSec
}

// GetMode returns the experiment mode or ModeRandom.
func (c *ExperimentConfig) GetMode() session.Mode {
	if c.Mode == nil {
		return session.ModeRandom
	}
	switch session.Mode(*c.Mode) {
	case session.ModeRandom, session.ModePreset:
		return session.Mode(*c.Mode)
	default:
		return session.ModeRandom
	}
}

// GetCanvasWidth returns the canvas width or the default.
func (c *ExperimentConfig) GetCanvasWidth() float64 {
	if c.CanvasWidth == nil || *c.CanvasWidth <= 0 {
		return session.DefaultCanvasWidth
	}
	return *c.CanvasWidth
}

// GetCanvasHeight returns the canvas height or the default.
func (c *ExperimentConfig) GetCanvasHeight() float64 {
	if c.CanvasHeight == nil || *c.CanvasHeight <= 0 {
		return session.DefaultCanvasHeight
	}
	return *c.CanvasHeight
}

// GetTargetRadius returns the default target radius or the default.
func (c *ExperimentConfig) GetTargetRadius() float64 {
	if c.TargetRadius == nil || *c.TargetRadius <= 0 {
		return session.DefaultTargetRadius
	}
	return *c.TargetRadius
}

// GetPresetDistances returns the preset design distances or the defaults.
func (c *ExperimentConfig) GetPresetDistances() []float64 {
	if len(c.PresetDistances) == 0 {
		return session.DefaultDistances
	}
	return c.PresetDistances
}

// GetPresetWidths returns the preset design widths or the defaults.
func (c *ExperimentConfig) GetPresetWidths() []float64 {
	if len(c.PresetWidths) == 0 {
		return session.DefaultWidths
	}
	return c.PresetWidths
}

// SessionConfig builds the engine configuration from the loaded file.
func (c *ExperimentConfig) SessionConfig() session.Config {
	return session.Config{
		Trials:         c.GetTrials(),
		SampleInterval: c.GetSampleInterval(),
		Mode:           c.GetMode(),
		CanvasWidth:    c.GetCanvasWidth(),
		CanvasHeight:   c.GetCanvasHeight(),
		DefaultRadius:  c.GetTargetRadius(),
		Distances:      c.GetPresetDistances(),
		Widths:         c.GetPresetWidths(),
	}
}
