// Package render draws the alert and reacts to compositor events. It is
// deliberately free of Wayland types: geometry comes in as Events, pixels
// go out through the Pool interface, so the whole pipeline is testable
// without a compositor.
package render

// EventKind orders compositor events by how much they supersede. A pending
// event is only replaced by one of equal or higher kind, so a repaint never
// swallows a resize and nothing outranks a close.
type EventKind int

const (
	// KindRefresh repaints at the current geometry.
	KindRefresh EventKind = iota
	// KindConfigure carries new surface geometry.
	KindConfigure
	// KindClosed means the compositor withdrew the surface.
	KindClosed
)

// Event is one pending compositor notification.
type Event struct {
	Kind   EventKind
	Width  int
	Height int
}

// Refresh requests a repaint without a geometry change.
func Refresh() Event { return Event{Kind: KindRefresh} }

// Configure carries the geometry from a configure event.
func Configure(width, height int) Event {
	return Event{Kind: KindConfigure, Width: width, Height: height}
}

// Closed reports that the compositor closed the surface.
func Closed() Event { return Event{Kind: KindClosed} }

// Coalescer keeps at most one pending event. Compositors can send bursts
// of configures; only the last geometry matters, and once a close arrives
// nothing else does.
type Coalescer struct {
	pending *Event
}

// Post offers an event. It reports whether the event was accepted; an
// event outranked by the pending one is dropped, and the caller must not
// acknowledge a dropped configure.
func (c *Coalescer) Post(ev Event) bool {
	if c.pending != nil && ev.Kind < c.pending.Kind {
		return false
	}
	c.pending = &ev
	return true
}

// Take removes and returns the pending event, if any.
func (c *Coalescer) Take() (Event, bool) {
	if c.pending == nil {
		return Event{}, false
	}
	ev := *c.pending
	c.pending = nil
	return ev, true
}
