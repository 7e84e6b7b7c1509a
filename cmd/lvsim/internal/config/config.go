// Package config loads the optional lvsim.yaml simulation configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the optional lvsim.yaml configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Library LibraryConfig `yaml:"library"`
}

// DisplayConfig describes the simulated display.
type DisplayConfig struct {
	Width       int `yaml:"width,omitempty"`
	Height      int `yaml:"height,omitempty"`
	BufferLines int `yaml:"buffer_lines,omitempty"`
}

// InputConfig describes scripted pointer gestures.
type InputConfig struct {
	Taps []Tap `yaml:"taps,omitempty"`
}

// Tap is one scripted press-and-release.
type Tap struct {
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
	Hold int `yaml:"hold,omitempty"`
}

// OutputConfig controls the rendered artifact.
type OutputConfig struct {
	Path   string `yaml:"path,omitempty"`
	Scale  int    `yaml:"scale,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

// LibraryConfig selects the native backend.
type LibraryConfig struct {
	// Path to a native shared library. Empty selects the emulated core.
	Path string `yaml:"path,omitempty"`
}

// Resolved contains resolved configuration values with defaults applied.
type Resolved struct {
	Width       int
	Height      int
	BufferLines int
	Taps        []Tap
	OutputPath  string
	Scale       int
	Frames      int
	LibraryPath string
}

// LoadOptional reads lvsim.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "lvsim.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read lvsim.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse lvsim.yaml: %w", err)
	}
	return &cfg, nil
}

// Resolve loads lvsim.yaml (if present) and applies defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Width:       cfg.Display.Width,
		Height:      cfg.Display.Height,
		BufferLines: cfg.Display.BufferLines,
		Taps:        cfg.Input.Taps,
		OutputPath:  strings.TrimSpace(cfg.Output.Path),
		Scale:       cfg.Output.Scale,
		Frames:      cfg.Output.Frames,
		LibraryPath: strings.TrimSpace(cfg.Library.Path),
	}
	if r.Width == 0 {
		r.Width = 320
	}
	if r.Height == 0 {
		r.Height = 240
	}
	if r.OutputPath == "" {
		r.OutputPath = "lvsim.png"
	}
	if r.Scale == 0 {
		r.Scale = 2
	}
	if r.Frames == 0 {
		r.Frames = 60
	}

	if err := validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

func validate(r *Resolved) error {
	if r.Width < 1 || r.Height < 1 {
		return fmt.Errorf("display size %dx%d is invalid", r.Width, r.Height)
	}
	if r.BufferLines < 0 || r.BufferLines > r.Height {
		return fmt.Errorf("buffer_lines %d exceeds display height %d", r.BufferLines, r.Height)
	}
	if r.Scale < 1 {
		return fmt.Errorf("output scale %d is invalid", r.Scale)
	}
	if r.Frames < 1 {
		return fmt.Errorf("frame count %d is invalid", r.Frames)
	}
	for _, tap := range r.Taps {
		if tap.X < 0 || tap.Y < 0 || tap.X >= r.Width || tap.Y >= r.Height {
			return fmt.Errorf("tap (%d,%d) is outside the %dx%d display", tap.X, tap.Y, r.Width, r.Height)
		}
	}
	return nil
}
