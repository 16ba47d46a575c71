package protocols

import (
	"github.com/neurlang/wayland/wl"
)

// xdg_wm_base request opcodes.
const (
	opWmBaseDestroy       = 0
	opWmBaseGetXdgSurface = 2
	opWmBasePong          = 3
)

// xdg_surface request opcodes.
const (
	opXdgSurfaceDestroy      = 0
	opXdgSurfaceGetToplevel  = 1
	opXdgSurfaceAckConfigure = 4
)

// xdg_toplevel request opcodes.
const (
	opToplevelDestroy  = 0
	opToplevelSetTitle = 2
	opToplevelSetAppID = 3
)

// WmBase is the xdg_wm_base global. It answers compositor pings itself, so
// callers only need to keep it bound.
type WmBase struct {
	wl.BaseProxy
}

// BindWmBase binds the advertised global to a new client-side proxy.
func BindWmBase(registry *wl.Registry, name uint32, version uint32) (*WmBase, error) {
	base := new(WmBase)
	registry.Context().Register(base)
	if err := registry.Bind(name, "xdg_wm_base", version, base); err != nil {
		return nil, err
	}
	return base, nil
}

// Dispatch answers ping events; an unanswered ping gets the client killed.
func (b *WmBase) Dispatch(event *wl.Event) {
	if event.Opcode == 0 { // ping
		serial := event.Uint32()
		_ = b.Context().SendRequest(b, opWmBasePong, serial)
	}
}

// GetXdgSurface wraps a wl_surface in an xdg_surface.
func (b *WmBase) GetXdgSurface(surface *wl.Surface) (*XdgSurface, error) {
	xs := new(XdgSurface)
	b.Context().Register(xs)
	err := b.Context().SendRequest(b, opWmBaseGetXdgSurface, xs, surface)
	if err != nil {
		return nil, err
	}
	return xs, nil
}

// Destroy releases the wm base global.
func (b *WmBase) Destroy() error {
	return b.Context().SendRequest(b, opWmBaseDestroy)
}

// XdgSurfaceConfigureEvent is the atomic "apply pending state now" signal.
type XdgSurfaceConfigureEvent struct {
	Serial uint32
}

// XdgSurfaceListener receives xdg_surface events.
type XdgSurfaceListener interface {
	HandleXdgSurfaceConfigure(XdgSurfaceConfigureEvent)
}

// XdgSurface is an xdg_surface object.
type XdgSurface struct {
	wl.BaseProxy
	listener XdgSurfaceListener
}

// AddListener registers the event listener. Only one listener is supported.
func (s *XdgSurface) AddListener(l XdgSurfaceListener) {
	s.listener = l
}

// Dispatch decodes an xdg_surface event and routes it to the listener.
func (s *XdgSurface) Dispatch(event *wl.Event) {
	if s.listener == nil {
		return
	}
	if event.Opcode == 0 { // configure
		s.listener.HandleXdgSurfaceConfigure(XdgSurfaceConfigureEvent{Serial: event.Uint32()})
	}
}

// GetToplevel assigns the toplevel role to the surface.
func (s *XdgSurface) GetToplevel() (*Toplevel, error) {
	tl := new(Toplevel)
	s.Context().Register(tl)
	err := s.Context().SendRequest(s, opXdgSurfaceGetToplevel, tl)
	if err != nil {
		return nil, err
	}
	return tl, nil
}

// AckConfigure acknowledges a configure event.
func (s *XdgSurface) AckConfigure(serial uint32) error {
	return s.Context().SendRequest(s, opXdgSurfaceAckConfigure, serial)
}

// Destroy destroys the xdg_surface object.
func (s *XdgSurface) Destroy() error {
	return s.Context().SendRequest(s, opXdgSurfaceDestroy)
}

// ToplevelConfigureEvent suggests a new window size. Zero width or height
// means the client decides.
type ToplevelConfigureEvent struct {
	Width  int32
	Height int32
}

// ToplevelCloseEvent asks the client to close the window.
type ToplevelCloseEvent struct{}

// ToplevelListener receives xdg_toplevel events.
type ToplevelListener interface {
	HandleToplevelConfigure(ToplevelConfigureEvent)
	HandleToplevelClose(ToplevelCloseEvent)
}

// Toplevel is an xdg_toplevel object.
type Toplevel struct {
	wl.BaseProxy
	listener ToplevelListener
}

// AddListener registers the event listener. Only one listener is supported.
func (t *Toplevel) AddListener(l ToplevelListener) {
	t.listener = l
}

// Dispatch decodes an xdg_toplevel event and routes it to the listener.
// The states array of configure is not used and left undecoded.
func (t *Toplevel) Dispatch(event *wl.Event) {
	if t.listener == nil {
		return
	}
	switch event.Opcode {
	case 0: // configure
		var ev ToplevelConfigureEvent
		ev.Width = event.Int32()
		ev.Height = event.Int32()
		t.listener.HandleToplevelConfigure(ev)
	case 1: // close
		t.listener.HandleToplevelClose(ToplevelCloseEvent{})
	}
}

// SetTitle sets the window title.
func (t *Toplevel) SetTitle(title string) error {
	return t.Context().SendRequest(t, opToplevelSetTitle, title)
}

// SetAppID sets the application identifier used for window grouping.
func (t *Toplevel) SetAppID(appID string) error {
	return t.Context().SendRequest(t, opToplevelSetAppID, appID)
}

// Destroy destroys the toplevel object.
func (t *Toplevel) Destroy() error {
	return t.Context().SendRequest(t, opToplevelDestroy)
}
