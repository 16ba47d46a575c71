package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"

	"github.com/jmylchreest/waynag/internal/config"
	"github.com/jmylchreest/waynag/internal/font"
)

func testFace(t *testing.T, px float64) xfont.Face {
	t.Helper()
	fnt, err := font.Load("embedded")
	require.NoError(t, err)
	face, err := fnt.Face(px)
	require.NoError(t, err)
	return face
}

func TestTextHeight(t *testing.T) {
	tests := []struct {
		name   string
		height int
		max    float64
		want   float64
	}{
		{"bar capped", 64, 16, 16},
		{"bar under cap", 20, 16, 10},
		{"window uncapped", 240, 0, 120},
		{"exactly at cap", 32, 16, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TextHeight(tt.height, tt.max))
		})
	}
}

func TestLayout_DismissOnly(t *testing.T) {
	alert := &config.Alert{Message: "Disk full", Severity: config.SeverityError}
	face := testFace(t, 16)

	frame := Layout(400, 32, alert, face, 16)

	require.Len(t, frame.Buttons, 1)
	dismiss := frame.Buttons[0]
	assert.Equal(t, "x", dismiss.Label)
	assert.Equal(t, Exit{}, dismiss.Target.Action)

	textW := xfont.MeasureString(face, "x").Ceil()
	assert.Equal(t, textW+20, dismiss.Target.W)
	assert.Equal(t, 400-dismiss.Target.W-10, dismiss.Target.X)
	assert.Equal(t, 2, dismiss.Target.Y)
	assert.Equal(t, 28, dismiss.Target.H)
}

func TestLayout_ButtonsPackRightToLeft(t *testing.T) {
	alert := &config.Alert{
		Message:  "Disk full",
		Severity: config.SeverityError,
		Buttons: []config.Button{
			{Label: "Clean", Command: "clean"},
			{Label: "Ignore", Command: "true"},
		},
	}
	face := testFace(t, 16)

	frame := Layout(800, 32, alert, face, 16)

	// Dismiss first, then the configured buttons walking left
	require.Len(t, frame.Buttons, 3)
	assert.Equal(t, "x", frame.Buttons[0].Label)
	assert.Equal(t, "Clean", frame.Buttons[1].Label)
	assert.Equal(t, "Ignore", frame.Buttons[2].Label)
	assert.Equal(t, RunCommand{Command: "clean"}, frame.Buttons[1].Target.Action)

	for i := 1; i < len(frame.Buttons); i++ {
		prev := frame.Buttons[i-1].Target
		cur := frame.Buttons[i].Target
		assert.LessOrEqual(t, cur.X+cur.W, prev.X, "button %d overlaps its right neighbor", i)
	}
	for i, b := range frame.Buttons {
		assert.GreaterOrEqual(t, b.Target.X, 0, "button %d off the left edge", i)
		assert.LessOrEqual(t, b.Target.X+b.Target.W, 800, "button %d off the right edge", i)
	}
}

func TestLayout_MessagePlacement(t *testing.T) {
	alert := &config.Alert{Message: "hello", Severity: config.SeverityError}
	face := testFace(t, 16)

	frame := Layout(400, 32, alert, face, 16)

	assert.Equal(t, "hello", frame.Message)
	assert.Equal(t, 10, frame.MessageX)
	assert.Equal(t, 32/2-16/2, frame.MessageY)
}

func TestLayout_TargetsMatchButtons(t *testing.T) {
	alert := &config.Alert{
		Message:  "m",
		Severity: config.SeverityError,
		Buttons:  []config.Button{{Label: "A", Command: "a"}},
	}
	face := testFace(t, 16)

	frame := Layout(400, 32, alert, face, 16)
	targets := frame.Targets()

	require.Len(t, targets, len(frame.Buttons))
	for i := range targets {
		assert.Equal(t, frame.Buttons[i].Target, targets[i])
	}
}
