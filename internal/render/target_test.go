package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickTarget_Hit(t *testing.T) {
	target := ClickTarget{X: 10, Y: 2, W: 40, H: 28}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"top-left corner inclusive", 10, 2, true},
		{"interior", 30, 15, true},
		{"right edge exclusive", 50, 15, false},
		{"bottom edge exclusive", 30, 30, false},
		{"just inside right", 49.9, 15, true},
		{"just inside bottom", 30, 29.9, true},
		{"left of target", 9.9, 15, false},
		{"above target", 30, 1.9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, target.Hit(tt.x, tt.y))
		})
	}
}

func TestHitTest_LastMatchWins(t *testing.T) {
	targets := []ClickTarget{
		{X: 0, Y: 0, W: 100, H: 100, Action: Exit{}},
		{X: 50, Y: 0, W: 100, H: 100, Action: RunCommand{Command: "true"}},
	}

	act, ok := hitTest(targets, 75, 50)
	require.True(t, ok)
	assert.Equal(t, RunCommand{Command: "true"}, act)

	// Only the first target covers this point
	act, ok = hitTest(targets, 25, 50)
	require.True(t, ok)
	assert.Equal(t, Exit{}, act)
}

func TestHitTest_Miss(t *testing.T) {
	targets := []ClickTarget{
		{X: 10, Y: 2, W: 40, H: 28, Action: Exit{}},
	}
	_, ok := hitTest(targets, 200, 200)
	assert.False(t, ok)

	_, ok = hitTest(nil, 10, 10)
	assert.False(t, ok)
}
