// Package config loads the simulator settings from YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

var ErrInvalid = errors.New("invalid config")

// Config is the root document
type Config struct {
	Frame    Frame    `yaml:"frame"`
	Log      Log      `yaml:"log"`
	Script   Script   `yaml:"script"`
	Render   Render   `yaml:"render"`
	Audio    Audio    `yaml:"audio"`
	Scenario Scenario `yaml:"scenario"`
}

// Frame controls the driver loop
type Frame struct {
	// TargetFPS caps the frame rate, zero runs uncapped
	TargetFPS int `yaml:"target_fps"`
	// StallBudget is the join wait above which a frame counts as stalled
	StallBudget time.Duration `yaml:"stall_budget"`
	// MaxFrames stops the run after this many frames, zero runs until exit
	MaxFrames uint64 `yaml:"max_frames"`
}

// Log controls file logging
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Script selects the user script
type Script struct {
	// Path to a Lua file, empty uses the built-in drive script
	Path string `yaml:"path"`
}

// Render selects the graphics backend
type Render struct {
	Headless bool `yaml:"headless"`
	// KeyHold is how long a terminal key stays held after its last event
	KeyHold time.Duration `yaml:"key_hold"`
}

// Audio toggles lifecycle cues
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Scenario lists the actors spawned before the first frame
type Scenario struct {
	Vehicles []Vehicle `yaml:"vehicles"`
}

// Vehicle spawns Count copies of Template spaced along the x axis
type Vehicle struct {
	Template string  `yaml:"template"`
	Count    int     `yaml:"count"`
	Spacing  float32 `yaml:"spacing"`
	Height   float32 `yaml:"height"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Frame: Frame{
			TargetFPS:   30,
			StallBudget: 50 * time.Millisecond,
		},
		Log: Log{
			Level:      "INFO",
			File:       "logs/rigsim.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Render: Render{
			KeyHold: 120 * time.Millisecond,
		},
		Audio: Audio{
			Enabled: true,
			Volume:  0.4,
		},
		Scenario: Scenario{
			Vehicles: []Vehicle{
				{Template: "truck", Count: 1, Spacing: 8, Height: 1},
			},
		},
	}
}

// Load reads path over the defaults
// Unknown fields are rejected so typos do not silently fall back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	if c.Frame.TargetFPS < 0 {
		errs = append(errs, fmt.Errorf("frame.target_fps: %d < 0", c.Frame.TargetFPS))
	}
	if c.Frame.StallBudget < 0 {
		errs = append(errs, fmt.Errorf("frame.stall_budget: %s < 0", c.Frame.StallBudget))
	}
	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown %q", c.Log.Level))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume: %v outside [0,1]", c.Audio.Volume))
	}
	if c.Render.KeyHold < 0 {
		errs = append(errs, fmt.Errorf("render.key_hold: %s < 0", c.Render.KeyHold))
	}
	for i, v := range c.Scenario.Vehicles {
		if v.Template == "" {
			errs = append(errs, fmt.Errorf("scenario.vehicles[%d]: template required", i))
		}
		if v.Count < 0 {
			errs = append(errs, fmt.Errorf("scenario.vehicles[%d]: count %d < 0", i, v.Count))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
