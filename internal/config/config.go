// Package config loads the backdrop CLI settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all backdrop CLI configuration.
type Config struct {
	// Scene is the registry name used when no scene argument is given.
	Scene string `yaml:"scene"`
	// Seed fixes scene generation; 0 picks a fresh layout every run.
	Seed uint64 `yaml:"seed"`

	Window   WindowConfig   `yaml:"window"`
	Render   RenderConfig   `yaml:"render"`
	Terminal TerminalConfig `yaml:"terminal"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig configures the Ebitengine window.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// RenderConfig configures the Ebitengine host.
type RenderConfig struct {
	TPS           int     `yaml:"tps"`
	Opacity       float64 `yaml:"opacity"`
	FadeIn        float64 `yaml:"fade_in"` // seconds
	Background    string  `yaml:"background"`
	ShowFPS       bool    `yaml:"show_fps"`
	Debug         bool    `yaml:"debug"`
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// TerminalConfig configures the terminal preview.
type TerminalConfig struct {
	FPS   int  `yaml:"fps"`
	Mouse bool `yaml:"mouse"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scene: "spear",
		Window: WindowConfig{
			Title:  "backdrop",
			Width:  1280,
			Height: 720,
		},
		Render: RenderConfig{
			TPS:           60,
			Opacity:       0.6,
			FadeIn:        1,
			Background:    "#1A1F2E",
			ScreenshotDir: "screenshots",
		},
		Terminal: TerminalConfig{
			FPS:   30,
			Mouse: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies BACKDROP_* environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("BACKDROP_SCENE"); v != "" {
		c.Scene = v
	}
	if v := os.Getenv("BACKDROP_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid BACKDROP_SEED %q: %w", v, err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("BACKDROP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("BACKDROP_SCREENSHOT_DIR"); v != "" {
		c.Render.ScreenshotDir = v
	}
	if v := os.Getenv("BACKDROP_FULLSCREEN"); v != "" {
		full, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid BACKDROP_FULLSCREEN %q: %w", v, err)
		}
		c.Window.Fullscreen = full
	}
	return nil
}

// MaxRate bounds render.tps and terminal.fps.
const MaxRate = 1000

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Render.Opacity < 0 || c.Render.Opacity > 1 {
		return fmt.Errorf("invalid opacity %v (want 0..1)", c.Render.Opacity)
	}
	if c.Render.FadeIn < 0 {
		return fmt.Errorf("invalid fade_in %v", c.Render.FadeIn)
	}
	if c.Render.TPS < 0 || c.Render.TPS > MaxRate {
		return fmt.Errorf("invalid tps %d (want 0..%d)", c.Render.TPS, MaxRate)
	}
	if c.Terminal.FPS < 0 || c.Terminal.FPS > MaxRate {
		return fmt.Errorf("invalid terminal fps %d (want 0..%d)", c.Terminal.FPS, MaxRate)
	}
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
}
