package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalescer_LastConfigureWins(t *testing.T) {
	var c Coalescer

	assert.True(t, c.Post(Configure(100, 32)))
	assert.True(t, c.Post(Configure(200, 48)))

	ev, ok := c.Take()
	require.True(t, ok)
	assert.Equal(t, KindConfigure, ev.Kind)
	assert.Equal(t, 200, ev.Width)
	assert.Equal(t, 48, ev.Height)

	_, ok = c.Take()
	assert.False(t, ok)
}

func TestCoalescer_ClosedOutranksEverything(t *testing.T) {
	var c Coalescer

	assert.True(t, c.Post(Configure(100, 32)))
	assert.True(t, c.Post(Closed()))

	// A configure arriving after a close is dropped and must not be acked
	assert.False(t, c.Post(Configure(200, 48)))
	assert.False(t, c.Post(Refresh()))

	ev, ok := c.Take()
	require.True(t, ok)
	assert.Equal(t, KindClosed, ev.Kind)

	_, ok = c.Take()
	assert.False(t, ok)
}

func TestCoalescer_RefreshDoesNotDowngradeConfigure(t *testing.T) {
	var c Coalescer

	assert.True(t, c.Post(Configure(100, 32)))
	assert.False(t, c.Post(Refresh()))

	ev, ok := c.Take()
	require.True(t, ok)
	assert.Equal(t, KindConfigure, ev.Kind)
	assert.Equal(t, 100, ev.Width)
}

func TestCoalescer_ConfigureSupersedesRefresh(t *testing.T) {
	var c Coalescer

	assert.True(t, c.Post(Refresh()))
	assert.True(t, c.Post(Configure(100, 32)))

	ev, ok := c.Take()
	require.True(t, ok)
	assert.Equal(t, KindConfigure, ev.Kind)
}

func TestCoalescer_TakeEmpty(t *testing.T) {
	var c Coalescer
	_, ok := c.Take()
	assert.False(t, ok)
}
