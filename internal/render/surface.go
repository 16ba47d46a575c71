package render

import (
	"log/slog"

	"github.com/jmylchreest/waynag/internal/config"
	"github.com/jmylchreest/waynag/internal/font"
)

// Pool hands out the shared memory slot not currently held by the
// compositor.
type Pool interface {
	// Acquire returns a drawable slot. ok is false when the compositor
	// still owns both slots, in which case the frame is skipped; the next
	// configure or refresh repaints.
	Acquire() (slot Slot, ok bool)
}

// Slot is one drawable region of the double buffer pool.
type Slot interface {
	// Resize ensures capacity for size bytes, growing if needed.
	Resize(size int) error
	// Commit writes pix at offset 0 and publishes it to the compositor as
	// a width x height ARGB8888 buffer, damaging the whole surface.
	Commit(pix []byte, width, height int) error
}

// Runner launches button commands without blocking the render loop.
type Runner interface {
	Run(command string) error
}

// Surface owns the render state for one on-screen surface: the pending
// event, current geometry, click targets of the last draw, pointer state
// and the exit flag.
type Surface struct {
	alert  *config.Alert
	style  config.Style
	fnt    *font.Font
	pool   Pool
	runner Runner
	logger *slog.Logger

	events        Coalescer
	width, height int
	targets       []ClickTarget

	pointerX, pointerY float64
	hasPointer         bool
	shouldExit         bool
}

// NewSurface creates the render state for one surface.
func NewSurface(alert *config.Alert, style config.Style, fnt *font.Font, pool Pool, runner Runner, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{
		alert:  alert,
		style:  style,
		fnt:    fnt,
		pool:   pool,
		runner: runner,
		logger: logger,
	}
}

// Post offers a compositor event for the next HandleEvents pass and reports
// whether it was accepted (see Coalescer.Post).
func (s *Surface) Post(ev Event) bool {
	return s.events.Post(ev)
}

// SetStyle swaps the appearance. Takes effect on the next draw; callers
// post a Refresh to apply it immediately.
func (s *Surface) SetStyle(style config.Style) {
	s.style = style
}

// HandleEvents applies the pending event, if any, and reports whether the
// surface should be dropped.
func (s *Surface) HandleEvents() bool {
	ev, ok := s.events.Take()
	if !ok {
		return s.shouldExit
	}

	switch ev.Kind {
	case KindClosed:
		return true
	case KindConfigure:
		s.width, s.height = ev.Width, ev.Height
		s.draw()
	case KindRefresh:
		// No geometry yet means nothing to repaint
		if s.width > 0 && s.height > 0 {
			s.draw()
		}
	}
	return false
}

// PointerEnter records the pointer entering the surface at (x, y).
func (s *Surface) PointerEnter(x, y float64) {
	s.pointerX, s.pointerY = x, y
	s.hasPointer = true
}

// PointerMotion records a new pointer position.
func (s *Surface) PointerMotion(x, y float64) {
	s.pointerX, s.pointerY = x, y
	s.hasPointer = true
}

// PointerLeave forgets the pointer so a press after leaving cannot hit a
// stale position.
func (s *Surface) PointerLeave() {
	s.hasPointer = false
}

// PointerPress resolves a button press at the last known pointer position
// against the click targets of the most recent draw and dispatches the
// bound action. Exit is deferred to the next HandleEvents pass; a command
// that fails to start is logged and ignored.
func (s *Surface) PointerPress() {
	if !s.hasPointer {
		return
	}
	act, ok := hitTest(s.targets, s.pointerX, s.pointerY)
	if !ok {
		return
	}

	switch a := act.(type) {
	case Exit:
		s.shouldExit = true
	case RunCommand:
		if err := s.runner.Run(a.Command); err != nil {
			s.logger.Error("failed to run button command", "command", a.Command, "error", err)
		}
	}
}

// draw runs the full layout and rasterize pipeline and publishes the result.
func (s *Surface) draw() {
	slot, ok := s.pool.Acquire()
	if !ok {
		s.logger.Debug("both buffers busy, skipping frame",
			"width", s.width, "height", s.height)
		return
	}

	textH := TextHeight(s.height, s.style.MaxTextSize)
	face, err := s.fnt.Face(textH)
	if err != nil {
		s.logger.Error("failed to create font face", "size", textH, "error", err)
		return
	}

	if err := slot.Resize(4 * s.width * s.height); err != nil {
		s.logger.Error("failed to resize buffer", "error", err)
		return
	}

	frame := Layout(s.width, s.height, s.alert, face, textH)
	canvas := RenderFrame(frame, face, s.style.Palette)
	if err := slot.Commit(canvas.ARGB8888(), s.width, s.height); err != nil {
		s.logger.Warn("failed to publish buffer", "error", err)
		return
	}

	// Replace, not append: targets from a previous geometry must not keep
	// intercepting clicks after a resize
	s.targets = frame.Targets()
}
