// Package config loads YAML settings for the tapinfo command.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML document.
type Config struct {
	Tap     Tap     `yaml:"tap"`
	Input   Input   `yaml:"input"`
	Logging Logging `yaml:"logging"`
}

// Tap holds analysis settings.
type Tap struct {
	FrameSize int     `yaml:"frame_size"`
	Bands     int     `yaml:"bands"`
	Smoothing float64 `yaml:"smoothing"`
	MaxFPS    int     `yaml:"max_fps"`
	Window    string  `yaml:"window"`
}

// Input describes raw PCM fed to the tap.
type Input struct {
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
	Encoding   string `yaml:"encoding"`
	ChunkBytes int    `yaml:"chunk_bytes"`
}

// Logging selects log level and format.
type Logging struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Tap: Tap{
			FrameSize: 512,
			Bands:     16,
			Smoothing: 0.5,
			MaxFPS:    30,
			Window:    "hann",
		},
		Input: Input{
			SampleRate: 48000,
			Channels:   2,
			Encoding:   "pcm16",
			ChunkBytes: 4096,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load reads path and overlays it on Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings that cannot be used to build a tap.
func (c *Config) Validate() error {
	if c.Tap.FrameSize < 2 {
		return fmt.Errorf("config: tap.frame_size must be >= 2: %d", c.Tap.FrameSize)
	}

	if c.Tap.Bands < 1 {
		return fmt.Errorf("config: tap.bands must be >= 1: %d", c.Tap.Bands)
	}

	if c.Input.SampleRate <= 0 {
		return fmt.Errorf("config: input.sample_rate must be > 0: %d", c.Input.SampleRate)
	}

	if c.Input.Channels < 1 {
		return fmt.Errorf("config: input.channels must be >= 1: %d", c.Input.Channels)
	}

	if c.Input.ChunkBytes < 1 {
		return fmt.Errorf("config: input.chunk_bytes must be >= 1: %d", c.Input.ChunkBytes)
	}

	return nil
}
