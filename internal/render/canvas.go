package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/waynag/internal/config"
)

// Canvas rasterizes one frame into a pixel buffer.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas creates a canvas for a width x height surface.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// FillRect draws an opaque flat-colored rectangle, clipped to the canvas.
func (c *Canvas) FillRect(x, y, w, h int, col color.RGBA) {
	r := image.Rect(x, y, x+w, y+h).Intersect(c.img.Bounds())
	draw.Draw(c.img, r, &image.Uniform{col}, image.Point{}, draw.Src)
}

// DrawText rasterizes s with its glyph box top-left corner at (x, y).
func (c *Canvas) DrawText(s string, x, y int, face font.Face, col color.RGBA) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  &image.Uniform{col},
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Round()),
	}
	d.DrawString(s)
}

// At returns the pixel color at (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// ARGB8888 copies the canvas out as little-endian ARGB (B, G, R, A byte
// order), row-major with a stride of 4*width, the wl_shm wire format.
func (c *Canvas) ARGB8888() []byte {
	b := c.img.Bounds()
	out := make([]byte, 4*b.Dx()*b.Dy())
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := c.img.Pix[c.img.PixOffset(b.Min.X, y):c.img.PixOffset(b.Max.X, y)]
		for x := 0; x < len(row); x += 4 {
			out[i+0] = row[x+2] // B
			out[i+1] = row[x+1] // G
			out[i+2] = row[x+0] // R
			out[i+3] = row[x+3] // A
			i += 4
		}
	}
	return out
}

// RenderFrame draws, in order, the full-surface background, each button
// block with its label, and the message text.
func RenderFrame(frame Frame, face font.Face, pal config.Palette) *Canvas {
	c := NewCanvas(frame.Width, frame.Height)

	c.FillRect(0, 0, frame.Width, frame.Height, pal.Background)

	for _, b := range frame.Buttons {
		t := b.Target
		c.FillRect(t.X, t.Y, t.W, t.H, pal.Button)
		c.DrawText(b.Label, b.LabelX, b.LabelY, face, pal.Text)
	}

	c.DrawText(frame.Message, frame.MessageX, frame.MessageY, face, pal.Text)
	return c
}
