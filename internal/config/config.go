// Package config handles configuration file loading and the alert content
// model built from command line flags.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Mode selects how the alert is presented.
type Mode string

const (
	// ModeBar anchors one persistent strip per output via wlr-layer-shell.
	ModeBar Mode = "bar"
	// ModeWindow shows a single floating xdg-shell window.
	ModeWindow Mode = "window"
)

// Default configuration values.
const (
	DefaultBarHeight    = 32
	DefaultBarEdge      = "top"
	DefaultMaxTextSize  = 16.0
	DefaultWindowWidth  = 320
	DefaultWindowHeight = 240
	DefaultFontSource   = "embedded"
)

// Config represents the waynag configuration.
type Config struct {
	Bar    BarConfig    `toml:"bar"`
	Window WindowConfig `toml:"window"`
	Colors ColorsConfig `toml:"colors"`
	Font   FontConfig   `toml:"font"`
	Watch  WatchConfig  `toml:"watch"`
}

// BarConfig holds bar-mode appearance settings.
type BarConfig struct {
	Height      int     `toml:"height"`        // Strip height in pixels
	Edge        string  `toml:"edge"`          // top or bottom
	MaxTextSize float64 `toml:"max_text_size"` // Cap on the text height
}

// WindowConfig holds window-mode settings.
type WindowConfig struct {
	Width  int `toml:"width"`  // Initial width before the first configure
	Height int `toml:"height"` // Initial height before the first configure
}

// ColorsConfig holds one palette per severity.
type ColorsConfig struct {
	Error   PaletteConfig `toml:"error"`
	Warning PaletteConfig `toml:"warning"`
}

// PaletteConfig holds hex color strings for one severity.
type PaletteConfig struct {
	Background string `toml:"background"`
	Button     string `toml:"button"`
	Text       string `toml:"text"`
}

// FontConfig selects the font face.
// Source is "embedded" (bundled Go Mono), "system" (scan the standard font
// directories), or a path to a TTF/OTF file.
type FontConfig struct {
	Source string `toml:"source"`
}

// WatchConfig controls config hot-reload.
type WatchConfig struct {
	Enabled bool `toml:"enabled"`
}

// Palette is the resolved color set for one severity.
type Palette struct {
	Background color.RGBA
	Button     color.RGBA
	Text       color.RGBA
}

// Style is the resolved appearance for one surface.
type Style struct {
	Palette     Palette
	MaxTextSize float64 // 0 disables the cap (window mode)
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Bar: BarConfig{
			Height:      DefaultBarHeight,
			Edge:        DefaultBarEdge,
			MaxTextSize: DefaultMaxTextSize,
		},
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Colors: ColorsConfig{
			Error: PaletteConfig{
				Background: "#c80000",
				Button:     "#640000",
				Text:       "#ffffff",
			},
			Warning: PaletteConfig{
				Background: "#c87800",
				Button:     "#7d4b00",
				Text:       "#ffffff",
			},
		},
		Font: FontConfig{
			Source: DefaultFontSource,
		},
		Watch: WatchConfig{
			Enabled: false,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "waynag", "config.toml")
}

// LoadConfig loads configuration from the given path, falling back to the
// default path and then to built-in defaults when no file exists.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = ConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks dimensions, the bar edge and all palette colors.
func (c *Config) Validate() error {
	if c.Bar.Height <= 0 {
		return fmt.Errorf("bar height must be positive, got %d", c.Bar.Height)
	}
	if c.Bar.MaxTextSize < 0 {
		return fmt.Errorf("bar max_text_size must not be negative, got %v", c.Bar.MaxTextSize)
	}
	if c.Bar.Edge != "top" && c.Bar.Edge != "bottom" {
		return fmt.Errorf("bar edge must be %q or %q, got %q", "top", "bottom", c.Bar.Edge)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	for _, sev := range []Severity{SeverityError, SeverityWarning} {
		if _, err := c.Palette(sev); err != nil {
			return err
		}
	}
	return nil
}

// Palette resolves the color set for a severity. Unknown severities use the
// error palette, matching the default message type.
func (c *Config) Palette(sev Severity) (Palette, error) {
	name := "error"
	pc := c.Colors.Error
	if sev == SeverityWarning {
		name = "warning"
		pc = c.Colors.Warning
	}

	var (
		pal Palette
		err error
	)
	if pal.Background, err = ParseColor(pc.Background); err != nil {
		return Palette{}, fmt.Errorf("colors.%s.background: %w", name, err)
	}
	if pal.Button, err = ParseColor(pc.Button); err != nil {
		return Palette{}, fmt.Errorf("colors.%s.button: %w", name, err)
	}
	if pal.Text, err = ParseColor(pc.Text); err != nil {
		return Palette{}, fmt.Errorf("colors.%s.text: %w", name, err)
	}
	return pal, nil
}

// StyleFor resolves the full appearance for one presentation mode.
// Window mode renders text at half the surface height with no cap.
func (c *Config) StyleFor(mode Mode, sev Severity) (Style, error) {
	pal, err := c.Palette(sev)
	if err != nil {
		return Style{}, err
	}
	style := Style{Palette: pal}
	if mode == ModeBar {
		style.MaxTextSize = c.Bar.MaxTextSize
	}
	return style, nil
}

// ParseColor parses a "#rrggbb" or "#aarrggbb" hex color string.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("color %q must start with '#'", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	switch len(hex) {
	case 6:
		return color.RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 0xff,
		}, nil
	case 8:
		return color.RGBA{
			A: uint8(v >> 24),
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
		}, nil
	default:
		return color.RGBA{}, fmt.Errorf("color %q must be #rrggbb or #aarrggbb", s)
	}
}
