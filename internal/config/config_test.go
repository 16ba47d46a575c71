package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 32, cfg.Bar.Height)
	assert.Equal(t, "top", cfg.Bar.Edge)
	assert.Equal(t, 16.0, cfg.Bar.MaxTextSize)
	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 240, cfg.Window.Height)
	assert.Equal(t, "embedded", cfg.Font.Source)
	assert.False(t, cfg.Watch.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Bar.Height, cfg.Bar.Height)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[bar]
height = 48
edge = "bottom"
max_text_size = 20.0

[window]
width = 640
height = 480

[colors.warning]
background = "#112233"

[font]
source = "system"

[watch]
enabled = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 48, cfg.Bar.Height)
	assert.Equal(t, "bottom", cfg.Bar.Edge)
	assert.Equal(t, 20.0, cfg.Bar.MaxTextSize)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, "system", cfg.Font.Source)
	assert.True(t, cfg.Watch.Enabled)

	// Unset keys keep their defaults
	assert.Equal(t, DefaultConfig().Colors.Error.Background, cfg.Colors.Error.Background)

	pal, err := cfg.Palette(SeverityWarning)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}, pal.Background)
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	tests := []struct {
		name    string
		content string
	}{
		{"bad edge", "[bar]\nedge = \"left\"\n"},
		{"zero height", "[bar]\nheight = 0\n"},
		{"bad color", "[colors.error]\nbackground = \"red\"\n"},
		{"negative window", "[window]\nwidth = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#c80000", want: color.RGBA{R: 0xc8, A: 0xff}},
		{in: "#c87800", want: color.RGBA{R: 0xc8, G: 0x78, A: 0xff}},
		{in: "#ffffff", want: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{in: "#80102030", want: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}},
		{in: "c80000", wantErr: true},
		{in: "#c800", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPalette_UnknownSeverityFallsBackToError(t *testing.T) {
	cfg := DefaultConfig()

	pal, err := cfg.Palette(Severity("bogus"))
	require.NoError(t, err)

	errPal, err := cfg.Palette(SeverityError)
	require.NoError(t, err)
	assert.Equal(t, errPal, pal)
}

func TestStyleFor(t *testing.T) {
	cfg := DefaultConfig()

	bar, err := cfg.StyleFor(ModeBar, SeverityWarning)
	require.NoError(t, err)
	assert.Equal(t, 16.0, bar.MaxTextSize)

	warnPal, err := cfg.Palette(SeverityWarning)
	require.NoError(t, err)
	assert.Equal(t, warnPal, bar.Palette)

	win, err := cfg.StyleFor(ModeWindow, SeverityError)
	require.NoError(t, err)
	assert.Equal(t, 0.0, win.MaxTextSize)
}
