// Package config handles generator configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/hexsphere/internal/hexgrid"
	"github.com/Faultbox/hexsphere/pkg/sphere"
)

// Config holds all generator settings.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GeneratorConfig holds grid and geometry settings.
type GeneratorConfig struct {
	ChunkResolution int     `yaml:"chunk_resolution"` // Resolution of the cells that become files
	WorldResolution int     `yaml:"world_resolution"` // Resolution of the rendered cells
	Seed            uint64  `yaml:"seed"`
	ColorMode       string  `yaml:"color_mode"` // "cell" or "chunk"
	Shading         string  `yaml:"shading"`    // "flat" or "smooth"
	UpAxis          string  `yaml:"up_axis"`    // "y" (glTF) or "z"
	Radius          float64 `yaml:"radius"`     // Written as node scale
	Workers         int     `yaml:"workers"`
	FailFast        bool    `yaml:"fail_fast"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			ChunkResolution: 0,
			WorldResolution: 0,
			Seed:            1,
			ColorMode:       string(sphere.ColorPerCell),
			Shading:         string(sphere.ShadingFlat),
			UpAxis:          string(sphere.UpY),
			Radius:          1,
			Workers:         1,
			FailFast:        false,
		},
		Output: OutputConfig{
			Dir:    "output",
			Prefix: "output",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that would otherwise fail halfway through a run.
func (c *Config) Validate() error {
	g := c.Generator
	if err := hexgrid.ValidateResolutions(g.ChunkResolution, g.WorldResolution); err != nil {
		return err
	}
	if _, err := sphere.ParseColorMode(g.ColorMode); err != nil {
		return err
	}
	if _, err := sphere.ParseShading(g.Shading); err != nil {
		return err
	}
	if _, err := sphere.ParseUpAxis(g.UpAxis); err != nil {
		return err
	}
	if g.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %v", g.Radius)
	}
	if g.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", g.Workers)
	}
	if c.Output.Prefix == "" {
		return fmt.Errorf("output prefix must not be empty")
	}
	return nil
}
