package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/waynag/internal/config"
)

func TestCanvas_FillRectClips(t *testing.T) {
	c := NewCanvas(10, 10)
	red := color.RGBA{R: 0xff, A: 0xff}

	// Extends past the right and bottom edges
	c.FillRect(5, 5, 20, 20, red)

	assert.Equal(t, red, c.At(5, 5))
	assert.Equal(t, red, c.At(9, 9))
	assert.Equal(t, color.RGBA{}, c.At(4, 4))
}

func TestCanvas_ARGB8888ByteOrder(t *testing.T) {
	c := NewCanvas(2, 1)
	c.FillRect(0, 0, 1, 1, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff})

	out := c.ARGB8888()
	require.Len(t, out, 8)

	// Little-endian ARGB is B, G, R, A in memory
	assert.Equal(t, byte(0x33), out[0])
	assert.Equal(t, byte(0x22), out[1])
	assert.Equal(t, byte(0x11), out[2])
	assert.Equal(t, byte(0xff), out[3])
}

func TestRenderFrame(t *testing.T) {
	alert := &config.Alert{Message: "hi", Severity: config.SeverityError}
	face := testFace(t, 16)

	pal := config.Palette{
		Background: color.RGBA{R: 0xc8, A: 0xff},
		Button:     color.RGBA{R: 0x64, A: 0xff},
		Text:       color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}

	frame := Layout(400, 32, alert, face, 16)
	canvas := RenderFrame(frame, face, pal)

	// Bottom-left corner is plain background
	assert.Equal(t, pal.Background, canvas.At(0, 31))

	// A corner pixel of the dismiss block carries the button color
	target := frame.Buttons[0].Target
	assert.Equal(t, pal.Button, canvas.At(target.X, target.Y))
	assert.Equal(t, pal.Button, canvas.At(target.X+target.W-1, target.Y+target.H-1))
}
