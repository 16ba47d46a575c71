package wayland

import (
	"fmt"
	"log/slog"

	"github.com/neurlang/wayland/wl"
	"github.com/neurlang/wayland/wlclient"

	"github.com/jmylchreest/waynag/internal/protocols"
)

// Session is the shared compositor connection state: the display, the bound
// globals, the output registry and the pointer router. One Session backs
// either a bar or a window session driver.
type Session struct {
	display    *wl.Display
	registry   *wl.Registry
	compositor *wl.Compositor
	shm        *wl.Shm
	seat       *wl.Seat
	keyboard   *wl.Keyboard
	pointer    *wl.Pointer
	layerShell *protocols.LayerShell
	wmBase     *protocols.WmBase

	outputs map[uint32]*wl.Output
	router  *pointerRouter
	logger  *slog.Logger

	// Hotplug callbacks, set by the bar session after the initial
	// roundtrip. Outputs present at connect time are read from the map.
	onOutputAdded   func(name uint32, output *wl.Output)
	onOutputRemoved func(name uint32)

	closed bool
}

// Connect establishes the compositor session and binds the globals.
// A missing wl_compositor or wl_shm is a fatal environment error; the
// shell globals are checked later by the session driver that needs them.
func Connect(logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	display, err := wlclient.DisplayConnect(nil)
	if err != nil {
		return nil, fmt.Errorf("connect to wayland display: %w", err)
	}

	s := &Session{
		display: display,
		outputs: make(map[uint32]*wl.Output),
		router:  newPointerRouter(logger),
		logger:  logger,
	}

	s.registry, err = display.GetRegistry()
	if err != nil {
		wlclient.DisplayDisconnect(display)
		return nil, fmt.Errorf("get registry: %w", err)
	}
	s.registry.AddGlobalHandler(s)
	s.registry.AddGlobalRemoveHandler(s)

	if err := wlclient.DisplayRoundtrip(display); err != nil {
		wlclient.DisplayDisconnect(display)
		return nil, fmt.Errorf("registry roundtrip: %w", err)
	}

	if s.compositor == nil {
		wlclient.DisplayDisconnect(display)
		return nil, fmt.Errorf("compositor does not advertise wl_compositor")
	}
	if s.shm == nil {
		wlclient.DisplayDisconnect(display)
		return nil, fmt.Errorf("compositor does not advertise wl_shm")
	}

	// Second roundtrip settles seat capabilities and output geometry
	if err := wlclient.DisplayRoundtrip(display); err != nil {
		wlclient.DisplayDisconnect(display)
		return nil, fmt.Errorf("capabilities roundtrip: %w", err)
	}

	return s, nil
}

// HandleRegistryGlobal binds the globals the engine cares about.
func (s *Session) HandleRegistryGlobal(ev wl.RegistryGlobalEvent) {
	switch ev.Interface {
	case "wl_compositor":
		s.compositor = wlclient.RegistryBindCompositorInterface(s.registry, ev.Name, ev.Version)
	case "wl_shm":
		s.shm = wlclient.RegistryBindShmInterface(s.registry, ev.Name, ev.Version)
	case "wl_seat":
		s.seat = wlclient.RegistryBindSeatInterface(s.registry, ev.Name, ev.Version)
		s.seat.AddCapabilitiesHandler(s)
	case "wl_output":
		output := wlclient.RegistryBindOutputInterface(s.registry, ev.Name, ev.Version)
		s.outputs[ev.Name] = output
		s.logger.Debug("output added", "name", ev.Name)
		if s.onOutputAdded != nil {
			s.onOutputAdded(ev.Name, output)
		}
	case "zwlr_layer_shell_v1":
		shell, err := protocols.BindLayerShell(s.registry, ev.Name, ev.Version)
		if err != nil {
			s.logger.Warn("failed to bind layer shell", "error", err)
			return
		}
		s.layerShell = shell
	case "xdg_wm_base":
		base, err := protocols.BindWmBase(s.registry, ev.Name, ev.Version)
		if err != nil {
			s.logger.Warn("failed to bind xdg_wm_base", "error", err)
			return
		}
		s.wmBase = base
	}
}

// HandleRegistryGlobalRemove reacts to output hotplug removal.
func (s *Session) HandleRegistryGlobalRemove(ev wl.RegistryGlobalRemoveEvent) {
	output, ok := s.outputs[ev.Name]
	if !ok {
		return
	}
	delete(s.outputs, ev.Name)
	s.logger.Debug("output removed", "name", ev.Name)
	if s.onOutputRemoved != nil {
		s.onOutputRemoved(ev.Name)
	}
	output.Release()
}

// HandleSeatCapabilities maps the pointer and keyboard when the seat grows
// them. A seat without a usable keyboard or pointer is not fatal.
func (s *Session) HandleSeatCapabilities(ev wl.SeatCapabilitiesEvent) {
	if ev.Capabilities&wl.SeatCapabilityPointer != 0 && s.pointer == nil {
		pointer, err := s.seat.GetPointer()
		if err != nil {
			s.logger.Warn("failed to map pointer on seat", "error", err)
		} else {
			s.pointer = pointer
			pointer.AddEnterHandler(s.router)
			pointer.AddLeaveHandler(s.router)
			pointer.AddMotionHandler(s.router)
			pointer.AddButtonHandler(s.router)
		}
	}
	if ev.Capabilities&wl.SeatCapabilityKeyboard != 0 && s.keyboard == nil {
		keyboard, err := s.seat.GetKeyboard()
		if err != nil {
			s.logger.Warn("failed to map keyboard on seat", "error", err)
			return
		}
		s.keyboard = keyboard
	}
}

// Outputs returns the currently known outputs keyed by registry name.
func (s *Session) Outputs() map[uint32]*wl.Output {
	out := make(map[uint32]*wl.Output, len(s.outputs))
	for name, output := range s.outputs {
		out[name] = output
	}
	return out
}

// SetOutputCallbacks installs the hotplug callbacks. They run on the
// dispatch thread.
func (s *Session) SetOutputCallbacks(added func(name uint32, output *wl.Output), removed func(name uint32)) {
	s.onOutputAdded = added
	s.onOutputRemoved = removed
}

// Dispatch blocks until the compositor delivers the next batch of events
// and runs their handlers to completion.
func (s *Session) Dispatch() error {
	return wlclient.DisplayDispatch(s.display)
}

// Roundtrip flushes pending requests and waits for the compositor to
// process them.
func (s *Session) Roundtrip() error {
	return wlclient.DisplayRoundtrip(s.display)
}

// Close tears down the connection. The session drivers destroy their
// compositor-side surfaces before this runs; Close only releases the
// globals and disconnects. It is safe to call once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for name, output := range s.outputs {
		output.Release()
		delete(s.outputs, name)
	}
	if s.layerShell != nil {
		if err := s.layerShell.Destroy(); err != nil {
			s.logger.Debug("layer shell destroy failed", "error", err)
		}
	}
	if s.wmBase != nil {
		if err := s.wmBase.Destroy(); err != nil {
			s.logger.Debug("wm base destroy failed", "error", err)
		}
	}
	wlclient.DisplayDisconnect(s.display)
}
