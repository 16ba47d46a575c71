package wayland

import (
	"log/slog"

	"github.com/neurlang/wayland/wl"

	"github.com/jmylchreest/waynag/internal/render"
)

// pointerRouter forwards seat pointer events to the surface that currently
// has pointer focus. Surfaces register under their wl_surface id; events
// for surfaces we do not own (another client's, or one mid-teardown) are
// dropped.
type pointerRouter struct {
	surfaces map[wl.ProxyId]*render.Surface
	focused  *render.Surface
	logger   *slog.Logger
}

func newPointerRouter(logger *slog.Logger) *pointerRouter {
	return &pointerRouter{
		surfaces: make(map[wl.ProxyId]*render.Surface),
		logger:   logger,
	}
}

func (r *pointerRouter) register(id wl.ProxyId, s *render.Surface) {
	r.surfaces[id] = s
}

func (r *pointerRouter) unregister(id wl.ProxyId) {
	if r.focused != nil && r.focused == r.surfaces[id] {
		r.focused = nil
	}
	delete(r.surfaces, id)
}

// HandlePointerEnter focuses the entered surface.
func (r *pointerRouter) HandlePointerEnter(ev wl.PointerEnterEvent) {
	if ev.Surface == nil {
		return
	}
	r.focused = r.surfaces[ev.Surface.Id()]
	if r.focused != nil {
		r.focused.PointerEnter(float64(ev.SurfaceX), float64(ev.SurfaceY))
	}
}

// HandlePointerLeave drops focus.
func (r *pointerRouter) HandlePointerLeave(ev wl.PointerLeaveEvent) {
	if r.focused != nil {
		r.focused.PointerLeave()
		r.focused = nil
	}
}

// HandlePointerMotion updates the focused surface's pointer position.
func (r *pointerRouter) HandlePointerMotion(ev wl.PointerMotionEvent) {
	if r.focused != nil {
		r.focused.PointerMotion(float64(ev.SurfaceX), float64(ev.SurfaceY))
	}
}

// HandlePointerButton dispatches a press on the focused surface.
func (r *pointerRouter) HandlePointerButton(ev wl.PointerButtonEvent) {
	if ev.State != wl.PointerButtonStatePressed {
		return
	}
	if r.focused != nil {
		r.focused.PointerPress()
	}
}
