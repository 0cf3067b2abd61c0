// Package config loads the optional YAML settings file of the app.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tarasmobil/taras-mobil/assistant"
	"github.com/tarasmobil/taras-mobil/common"
)

// ErrInvalidConfig is returned for values that parse but make no sense.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full settings file.
type Config struct {
	Window           WindowConfig    `yaml:"window"`
	TickRate         float64         `yaml:"tick_rate,omitempty"`   // logic updates per second
	FrameLimit       float64         `yaml:"frame_limit,omitempty"` // 0 = uncapped render loop
	PresentMode      string          `yaml:"present_mode,omitempty"` // vsync, uncapped
	SoftwareAdapter  bool            `yaml:"software_adapter,omitempty"`
	RasterWorkers    int             `yaml:"raster_workers,omitempty"`
	Theme            string          `yaml:"theme,omitempty"` // system, light, dark
	SystemDark       bool            `yaml:"system_dark,omitempty"`
	Mute             bool            `yaml:"mute,omitempty"`
	Profiling        bool            `yaml:"profiling,omitempty"`
	CameraPermission string          `yaml:"camera_permission,omitempty"` // grant, deny
	Users            []User          `yaml:"users,omitempty"`
	Assistant        AssistantConfig `yaml:"assistant,omitempty"`
}

// WindowConfig sizes the phone-shaped window.
type WindowConfig struct {
	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// User is one login account. PasswordHash is a bcrypt hash.
type User struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// AssistantConfig overrides the chat assistant's behavior.
type AssistantConfig struct {
	Rules      []assistant.Rule `yaml:"rules,omitempty"`
	Fallback   string           `yaml:"fallback,omitempty"`
	ReplyDelay string           `yaml:"reply_delay,omitempty"` // e.g. "600ms"
}

// Accepted enum values.
const (
	PresentVSync    = "vsync"
	PresentUncapped = "uncapped"

	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"

	PermissionGrant = "grant"
	PermissionDeny  = "deny"
)

// Default returns the settings used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config at path. An empty path yields Default(); a missing file at an explicit
// path is an error.
//
// Parameters:
//   - path: path to a YAML file, or ""
//
// Returns:
//   - *Config: the loaded config with defaults applied
//   - error: read, parse or validation failure (validation failures wrap ErrInvalidConfig)
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML data, applies defaults and validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// applyDefaults fills in missing values.
func (c *Config) applyDefaults() {
	c.Window.Title = common.Coalesce(c.Window.Title, "TarasMobil")
	c.Window.Width = common.Coalesce(c.Window.Width, 420)
	c.Window.Height = common.Coalesce(c.Window.Height, 860)
	c.TickRate = common.Coalesce(c.TickRate, 60)
	c.PresentMode = common.Coalesce(c.PresentMode, PresentVSync)
	c.RasterWorkers = common.Coalesce(c.RasterWorkers, runtime.NumCPU())
	c.Theme = common.Coalesce(c.Theme, ThemeSystem)
	c.CameraPermission = common.Coalesce(c.CameraPermission, PermissionGrant)
	c.Assistant.ReplyDelay = common.Coalesce(c.Assistant.ReplyDelay, assistant.DefaultReplyDelay.String())
}

// Validate checks ranges and enum values.
func (c *Config) Validate() error {
	if c.Window.Width < 240 || c.Window.Height < 320 {
		return fmt.Errorf("%w: window %dx%d is smaller than 240x320", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.TickRate < 0 || c.FrameLimit < 0 {
		return fmt.Errorf("%w: tick_rate and frame_limit must not be negative", ErrInvalidConfig)
	}
	if c.RasterWorkers < 1 {
		return fmt.Errorf("%w: raster_workers must be positive", ErrInvalidConfig)
	}
	switch c.PresentMode {
	case PresentVSync, PresentUncapped:
	default:
		return fmt.Errorf("%w: present_mode %q", ErrInvalidConfig, c.PresentMode)
	}
	switch c.Theme {
	case ThemeSystem, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: theme %q", ErrInvalidConfig, c.Theme)
	}
	switch c.CameraPermission {
	case PermissionGrant, PermissionDeny:
	default:
		return fmt.Errorf("%w: camera_permission %q", ErrInvalidConfig, c.CameraPermission)
	}
	for i, u := range c.Users {
		if u.Username == "" || u.PasswordHash == "" {
			return fmt.Errorf("%w: user %d needs username and password_hash", ErrInvalidConfig, i)
		}
	}
	if _, err := c.ReplyDelay(); err != nil {
		return err
	}
	if err := assistant.ValidateRules(c.Assistant.Rules); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ReplyDelay parses the assistant's typing delay.
func (c *Config) ReplyDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Assistant.ReplyDelay)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: reply_delay %q", ErrInvalidConfig, c.Assistant.ReplyDelay)
	}
	return d, nil
}
