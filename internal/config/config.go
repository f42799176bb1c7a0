// Package config loads and validates the pixelwin configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/pixelwin/internal/window"
)

// Backend names accepted by the backend key.
const (
	BackendAuto     = "auto"
	BackendX11      = "x11"
	BackendTerminal = "terminal"
)

const (
	DefaultWidth  = 320
	DefaultHeight = 240
	DefaultFPS    = 60
	maxFPS        = 240
)

// WindowConfig describes the window the run command opens.
type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	Mode    string `yaml:"mode"`
	Monitor int    `yaml:"monitor"`
	Visible bool   `yaml:"visible"`
	// Scale is the number of host pixels per canvas pixel reported to mice.
	Scale float64 `yaml:"scale"`
}

// Config is the effective configuration.
type Config struct {
	// Backend selects the host: auto, x11 or terminal.
	Backend string `yaml:"backend"`
	// Display is the X11 display name; empty uses $DISPLAY.
	Display  string       `yaml:"display,omitempty"`
	LogLevel string       `yaml:"log_level"`
	FPS      int          `yaml:"fps"`
	Window   WindowConfig `yaml:"window"`
	// Icon is an image file applied as the window icon.
	Icon        string `yaml:"icon,omitempty"`
	SnapshotDir string `yaml:"snapshot_dir,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendAuto,
		LogLevel: "info",
		FPS:      DefaultFPS,
		Window: WindowConfig{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			Title:   "pixelwin",
			Mode:    window.Windowed.String(),
			Visible: true,
			Scale:   1,
		},
	}
}

// ValidationError reports an invalid value. Source is filled in when the
// value came from a file.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks ranges and names.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendX11, BackendTerminal:
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, x11, terminal")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.FPS < 1 || c.FPS > maxFPS {
		return &ValidationError{Path: "fps", Err: fmt.Errorf("fps must be between 1 and %d", maxFPS)}
	}
	if c.Window.Width <= 0 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Window.Height <= 0 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height must be > 0")}
	}
	if _, err := window.ParseMode(c.Window.Mode); err != nil {
		return &ValidationError{Path: "window.mode", Err: err}
	}
	if c.Window.Monitor < 0 {
		return &ValidationError{Path: "window.monitor", Err: fmt.Errorf("monitor must be >= 0")}
	}
	if c.Window.Scale <= 0 {
		return &ValidationError{Path: "window.scale", Err: fmt.Errorf("scale must be > 0")}
	}
	return nil
}

// WindowMode returns the parsed window mode, Windowed if invalid.
func (c *Config) WindowMode() window.Mode {
	m, _ := window.ParseMode(c.Window.Mode)
	return m
}

// WindowOptions converts the window section into window.Options.
func (c *Config) WindowOptions(logger *slog.Logger) window.Options {
	return window.Options{
		Width:   c.Window.Width,
		Height:  c.Window.Height,
		Title:   c.Window.Title,
		Mode:    c.WindowMode(),
		Monitor: c.Window.Monitor,
		Visible: c.Window.Visible,
		Logger:  logger,
	}
}

// SlogLevel maps log_level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SaveTo validates c and writes it to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
