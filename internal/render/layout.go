package render

import (
	"golang.org/x/image/font"

	"github.com/jmylchreest/waynag/internal/config"
)

// Fixed layout constants, in pixels.
const (
	verticalPadding   = 2
	horizontalPadding = 10
)

// dismissLabel is the text of the always-present rightmost dismiss control.
const dismissLabel = "x"

// Placement is one laid-out button block plus its label origin. LabelX and
// LabelY give the top-left corner of the glyph box.
type Placement struct {
	Target ClickTarget
	Label  string
	LabelX int
	LabelY int
}

// Frame is the output of a layout pass for one surface geometry.
type Frame struct {
	Width, Height int
	TextHeight    float64

	// Buttons in packing order: the dismiss control first (rightmost),
	// then the configured buttons walking left.
	Buttons []Placement

	Message  string
	MessageX int
	MessageY int
}

// Targets returns the click targets of the frame, in packing order.
func (f Frame) Targets() []ClickTarget {
	targets := make([]ClickTarget, 0, len(f.Buttons))
	for _, b := range f.Buttons {
		targets = append(targets, b.Target)
	}
	return targets
}

// TextHeight derives the glyph height for a surface of the given height:
// half the surface, capped at max when max is positive.
func TextHeight(height int, max float64) float64 {
	h := float64(height) / 2
	if max > 0 && h > max {
		return max
	}
	return h
}

// Layout packs the dismiss control and then each configured button right to
// left and positions the message text. The message is placed independently
// at a fixed left margin and may overlap the buttons when it is long; no
// wrapping or truncation is performed.
func Layout(width, height int, alert *config.Alert, face font.Face, textH float64) Frame {
	frame := Frame{
		Width:      width,
		Height:     height,
		TextHeight: textH,
		Message:    alert.Message,
		MessageX:   horizontalPadding,
		MessageY:   height/2 - int(textH/2),
	}

	cursor := width
	place := func(label string, act Action) {
		textW := font.MeasureString(face, label).Ceil()
		blockW := textW + 2*horizontalPadding
		blockH := height - 2*verticalPadding
		blockX := cursor - blockW - horizontalPadding
		blockY := verticalPadding

		frame.Buttons = append(frame.Buttons, Placement{
			Target: ClickTarget{X: blockX, Y: blockY, W: blockW, H: blockH, Action: act},
			Label:  label,
			LabelX: blockX + horizontalPadding,
			LabelY: blockY + (blockH-int(textH))/2,
		})
		cursor = blockX
	}

	place(dismissLabel, Exit{})
	for _, btn := range alert.Buttons {
		place(btn.Label, RunCommand{Command: btn.Command})
	}

	return frame
}
