package render

// Action is what a click target does when activated.
type Action interface {
	isAction()
}

// Exit requests teardown of the surface.
type Exit struct{}

// RunCommand launches a shell command.
type RunCommand struct {
	Command string
}

func (Exit) isAction()       {}
func (RunCommand) isAction() {}

// ClickTarget is a rectangle bound to an action, produced by layout and
// consumed by hit testing.
type ClickTarget struct {
	X, Y   int
	W, H   int
	Action Action
}

// Hit reports whether the point lands inside the target. Containment is
// half-open: left and top edges are inclusive, right and bottom exclusive.
func (t ClickTarget) Hit(x, y float64) bool {
	return x >= float64(t.X) && x < float64(t.X+t.W) &&
		y >= float64(t.Y) && y < float64(t.Y+t.H)
}

// hitTest scans targets in order; when several overlap the last match wins.
func hitTest(targets []ClickTarget, x, y float64) (Action, bool) {
	var (
		match Action
		ok    bool
	)
	for _, t := range targets {
		if t.Hit(x, y) {
			match, ok = t.Action, true
		}
	}
	return match, ok
}
