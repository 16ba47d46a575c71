package protocols

import (
	"github.com/neurlang/wayland/wl"
)

// Layer values for zwlr_layer_shell_v1.get_layer_surface.
const (
	LayerBackground uint32 = 0
	LayerBottom     uint32 = 1
	LayerTop        uint32 = 2
	LayerOverlay    uint32 = 3
)

// Anchor bits for zwlr_layer_surface_v1.set_anchor.
const (
	AnchorTop    uint32 = 1
	AnchorBottom uint32 = 2
	AnchorLeft   uint32 = 4
	AnchorRight  uint32 = 8
)

// zwlr_layer_shell_v1 request opcodes.
const (
	opLayerShellGetLayerSurface = 0
	opLayerShellDestroy         = 1
)

// zwlr_layer_surface_v1 request opcodes.
const (
	opLayerSurfaceSetSize                  = 0
	opLayerSurfaceSetAnchor                = 1
	opLayerSurfaceSetExclusiveZone         = 2
	opLayerSurfaceSetMargin                = 3
	opLayerSurfaceSetKeyboardInteractivity = 4
	opLayerSurfaceAckConfigure             = 6
	opLayerSurfaceDestroy                  = 7
)

// LayerShell is the zwlr_layer_shell_v1 global.
type LayerShell struct {
	wl.BaseProxy
}

// BindLayerShell binds the advertised global to a new client-side proxy.
func BindLayerShell(registry *wl.Registry, name uint32, version uint32) (*LayerShell, error) {
	shell := new(LayerShell)
	registry.Context().Register(shell)
	if err := registry.Bind(name, "zwlr_layer_shell_v1", version, shell); err != nil {
		return nil, err
	}
	return shell, nil
}

// GetLayerSurface turns a wl_surface into a layer surface on the given
// output. A nil output lets the compositor choose one.
func (s *LayerShell) GetLayerSurface(surface *wl.Surface, output *wl.Output, layer uint32, namespace string) (*LayerSurface, error) {
	ls := new(LayerSurface)
	s.Context().Register(ls)
	err := s.Context().SendRequest(s, opLayerShellGetLayerSurface, ls, surface, output, layer, namespace)
	if err != nil {
		return nil, err
	}
	return ls, nil
}

// Destroy releases the shell global.
func (s *LayerShell) Destroy() error {
	return s.Context().SendRequest(s, opLayerShellDestroy)
}

// LayerSurfaceConfigureEvent carries new surface geometry. It must be
// acknowledged with AckConfigure before the next commit.
type LayerSurfaceConfigureEvent struct {
	Serial uint32
	Width  uint32
	Height uint32
}

// LayerSurfaceClosedEvent means the compositor destroyed the surface and
// the client must tear it down.
type LayerSurfaceClosedEvent struct{}

// LayerSurfaceListener receives layer surface lifecycle events.
type LayerSurfaceListener interface {
	HandleLayerSurfaceConfigure(LayerSurfaceConfigureEvent)
	HandleLayerSurfaceClosed(LayerSurfaceClosedEvent)
}

// LayerSurface is a zwlr_layer_surface_v1 object.
type LayerSurface struct {
	wl.BaseProxy
	listener LayerSurfaceListener
}

// AddListener registers the event listener. Only one listener is supported.
func (s *LayerSurface) AddListener(l LayerSurfaceListener) {
	s.listener = l
}

// Dispatch decodes a layer surface event and routes it to the listener.
func (s *LayerSurface) Dispatch(event *wl.Event) {
	if s.listener == nil {
		return
	}
	switch event.Opcode {
	case 0: // configure
		var ev LayerSurfaceConfigureEvent
		ev.Serial = event.Uint32()
		ev.Width = event.Uint32()
		ev.Height = event.Uint32()
		s.listener.HandleLayerSurfaceConfigure(ev)
	case 1: // closed
		s.listener.HandleLayerSurfaceClosed(LayerSurfaceClosedEvent{})
	}
}

// SetSize requests the given surface size. Zero means "let the anchors
// decide" for that axis.
func (s *LayerSurface) SetSize(width, height uint32) error {
	return s.Context().SendRequest(s, opLayerSurfaceSetSize, width, height)
}

// SetAnchor anchors the surface to the given edges of the output.
func (s *LayerSurface) SetAnchor(anchor uint32) error {
	return s.Context().SendRequest(s, opLayerSurfaceSetAnchor, anchor)
}

// SetExclusiveZone reserves screen space so tiled clients do not overlap
// the surface.
func (s *LayerSurface) SetExclusiveZone(zone int32) error {
	return s.Context().SendRequest(s, opLayerSurfaceSetExclusiveZone, zone)
}

// SetMargin sets the distance from the anchored edges.
func (s *LayerSurface) SetMargin(top, right, bottom, left int32) error {
	return s.Context().SendRequest(s, opLayerSurfaceSetMargin, top, right, bottom, left)
}

// SetKeyboardInteractivity controls keyboard focus for the surface.
func (s *LayerSurface) SetKeyboardInteractivity(mode uint32) error {
	return s.Context().SendRequest(s, opLayerSurfaceSetKeyboardInteractivity, mode)
}

// AckConfigure acknowledges a configure event.
func (s *LayerSurface) AckConfigure(serial uint32) error {
	return s.Context().SendRequest(s, opLayerSurfaceAckConfigure, serial)
}

// Destroy destroys the layer surface object.
func (s *LayerSurface) Destroy() error {
	return s.Context().SendRequest(s, opLayerSurfaceDestroy)
}
