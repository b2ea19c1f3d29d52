// Package config handles configuration file loading and parsing.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "8s", "30m", "1h30m", or integer milliseconds.
// A value of "0" or 0 means disabled/never.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Try parsing as integer (milliseconds) for convenience
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '8s', '1m', '1h30m' or milliseconds: %w", s, err)
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

// Config is the gemdesk configuration.
// Loaded from ~/.config/gemdesk/config.toml
type Config struct {
	Toast   ToastConfig   `toml:"toast"`
	Window  WindowConfig  `toml:"window"`
	Shell   ShellConfig   `toml:"shell"`
	Theme   ThemeConfig   `toml:"theme"`
	Update  UpdateConfig  `toml:"update"`
	Proxy   ProxyConfig   `toml:"proxy"`
	Control ControlConfig `toml:"control"`
	Notify  NotifyConfig  `toml:"notify"`
}

// ToastConfig contains toast presentation settings.
type ToastConfig struct {
	MaxVisible  int      `toml:"max_visible"`  // Maximum simultaneous toasts
	AutoDismiss Duration `toml:"auto_dismiss"` // Lifetime of non-persistent toasts
}

// WindowConfig contains window geometry settings.
type WindowConfig struct {
	TitlebarHeight float64 `toml:"titlebar_height"` // Logical pixels
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
}

// ShellConfig contains settings for the wrapped web app.
type ShellConfig struct {
	URL string `toml:"url"`
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// UpdateConfig contains auto-update settings.
type UpdateConfig struct {
	Enabled     bool     `toml:"enabled"`
	Interval    Duration `toml:"interval"`     // Time between background checks
	ReleasesURL string   `toml:"releases_url"` // Latest-release API endpoint
}

// ProxyConfig contains the frame-embedding proxy settings.
type ProxyConfig struct {
	Listen   string `toml:"listen"`   // Loopback address the proxy serves on
	Upstream string `toml:"upstream"` // Origin being embedded
}

// ControlConfig contains the local control API settings.
type ControlConfig struct {
	Listen string `toml:"listen"` // Loopback address the control API serves on
}

// NotifyConfig contains OS notification mirror settings.
type NotifyConfig struct {
	Enabled bool `toml:"enabled"` // Mirror error/success toasts to the OS
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Toast: ToastConfig{
			MaxVisible:  5,
			AutoDismiss: Duration(8 * time.Second),
		},
		Window: WindowConfig{
			TitlebarHeight: 32,
			Width:          1200,
			Height:         800,
		},
		Shell: ShellConfig{
			URL: "https://gemini.google.com",
		},
		Theme: ThemeConfig{
			Name:        "default",
			ColorScheme: string(ColorSchemeSystem),
		},
		Update: UpdateConfig{
			Enabled:     true,
			Interval:    Duration(6 * time.Hour),
			ReleasesURL: "https://api.github.com/repos/gemdesk/gemdesk/releases/latest",
		},
		Proxy: ProxyConfig{
			Listen:   "127.0.0.1:8741",
			Upstream: "https://gemini.google.com",
		},
		Control: ControlConfig{
			Listen: "127.0.0.1:8742",
		},
		Notify: NotifyConfig{
			Enabled: true,
		},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "gemdesk", "config.toml"), nil
}

// Load loads the configuration from the given path. An empty path uses
// the default location. A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save writes the configuration to the given path. An empty path uses
// the default location.
func Save(config *Config, path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Toast.MaxVisible < 1 || c.Toast.MaxVisible > 20 {
		return fmt.Errorf("toast.max_visible must be between 1 and 20, got %d", c.Toast.MaxVisible)
	}
	if c.Toast.AutoDismiss.Duration() < 0 {
		return fmt.Errorf("toast.auto_dismiss must not be negative, got %s", c.Toast.AutoDismiss.Duration())
	}

	if c.Window.TitlebarHeight <= 0 {
		return fmt.Errorf("window.titlebar_height must be positive, got %v", c.Window.TitlebarHeight)
	}
	if c.Window.Width < 320 || c.Window.Height < 240 {
		return fmt.Errorf("window size must be at least 320x240, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Shell.URL == "" {
		return fmt.Errorf("shell.url must not be empty")
	}

	validScheme := false
	for _, s := range ValidColorSchemes() {
		if c.Theme.ColorScheme == string(s) {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return fmt.Errorf("invalid color scheme %q, must be one of: %v", c.Theme.ColorScheme, ValidColorSchemes())
	}

	if c.Update.Enabled {
		if c.Update.Interval.Duration() < time.Minute {
			return fmt.Errorf("update.interval must be at least 1m, got %s", c.Update.Interval.Duration())
		}
		if c.Update.ReleasesURL == "" {
			return fmt.Errorf("update.releases_url must not be empty when updates are enabled")
		}
	}

	for name, addr := range map[string]string{
		"proxy.listen":   c.Proxy.Listen,
		"control.listen": c.Control.Listen,
	} {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("invalid %s address %q: %w", name, addr, err)
		}
	}

	return nil
}
