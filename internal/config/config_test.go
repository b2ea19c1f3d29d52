package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5, cfg.Toast.MaxVisible)
	assert.Equal(t, 8*time.Second, cfg.Toast.AutoDismiss.Duration())
	assert.Equal(t, float64(32), cfg.Window.TitlebarHeight)
	assert.Equal(t, "https://gemini.google.com", cfg.Shell.URL)
	assert.Equal(t, string(ColorSchemeSystem), cfg.Theme.ColorScheme)
	assert.True(t, cfg.Update.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"8s", 8 * time.Second, false},
		{"1m", time.Minute, false},
		{"1h30m", 90 * time.Minute, false},
		{"5000", 5 * time.Second, false}, // integer milliseconds
		{"0", 0, false},
		{"banana", 0, true},
	}

	for _, tt := range tests {
		var d Duration
		err := d.UnmarshalText([]byte(tt.input))
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, d.Duration(), "input %q", tt.input)
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration(8 * time.Second)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "8s", string(text))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[toast]
max_visible = 3
auto_dismiss = "15s"

[theme]
color_scheme = "dark"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Toast.MaxVisible)
	assert.Equal(t, 15*time.Second, cfg.Toast.AutoDismiss.Duration())
	assert.Equal(t, "dark", cfg.Theme.ColorScheme)
	// Untouched sections keep their defaults
	assert.Equal(t, 1200, cfg.Window.Width)
	assert.Equal(t, "https://gemini.google.com", cfg.Shell.URL)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[toast]\nmax_visible = 99\n"), 0600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "max_visible")
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml at all ["), 0600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.Toast.MaxVisible = 7
	cfg.Theme.ColorScheme = "light"
	cfg.Update.Enabled = false

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"max_visible too low", func(c *Config) { c.Toast.MaxVisible = 0 }, "max_visible"},
		{"max_visible too high", func(c *Config) { c.Toast.MaxVisible = 21 }, "max_visible"},
		{"negative auto_dismiss", func(c *Config) { c.Toast.AutoDismiss = Duration(-time.Second) }, "auto_dismiss"},
		{"zero titlebar", func(c *Config) { c.Window.TitlebarHeight = 0 }, "titlebar_height"},
		{"tiny window", func(c *Config) { c.Window.Width = 100 }, "window size"},
		{"empty shell url", func(c *Config) { c.Shell.URL = "" }, "shell.url"},
		{"bad color scheme", func(c *Config) { c.Theme.ColorScheme = "sepia" }, "color scheme"},
		{"short update interval", func(c *Config) { c.Update.Interval = Duration(time.Second) }, "update.interval"},
		{"missing releases url", func(c *Config) { c.Update.ReleasesURL = "" }, "releases_url"},
		{"bad proxy listen", func(c *Config) { c.Proxy.Listen = "nonsense" }, "proxy.listen"},
		{"bad control listen", func(c *Config) { c.Control.Listen = "nonsense" }, "control.listen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, Save(DefaultConfig(), path))

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	cfg := DefaultConfig()
	cfg.Toast.MaxVisible = 2
	require.NoError(t, Save(cfg, path))

	select {
	case got := <-reloaded:
		assert.Equal(t, 2, got.Toast.MaxVisible)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a reload callback")
	}
}
