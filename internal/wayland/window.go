package wayland

import (
	"fmt"
	"log/slog"

	"github.com/neurlang/wayland/wl"

	"github.com/jmylchreest/waynag/internal/config"
	"github.com/jmylchreest/waynag/internal/font"
	"github.com/jmylchreest/waynag/internal/protocols"
	"github.com/jmylchreest/waynag/internal/render"
)

// WindowSession shows the alert as a single floating xdg-shell window. It
// returns once the window is dismissed or closed.
type WindowSession struct {
	session *Session
	cfg     *config.Config
	alert   *config.Alert
	style   config.Style
	fnt     *font.Font
	runner  render.Runner
	logger  *slog.Logger

	wlSurface  *wl.Surface
	xdgSurface *protocols.XdgSurface
	toplevel   *protocols.Toplevel
	pool       *DoublePool
	rs         *render.Surface

	// Geometry from the latest xdg_toplevel.configure, applied when the
	// matching xdg_surface.configure lands.
	pendingWidth  int32
	pendingHeight int32

	reload chan *config.Config
}

// NewWindowSession prepares a window session. The compositor must expose
// xdg_wm_base.
func NewWindowSession(session *Session, cfg *config.Config, alert *config.Alert, fnt *font.Font, runner render.Runner, logger *slog.Logger) (*WindowSession, error) {
	if session.wmBase == nil {
		return nil, fmt.Errorf("compositor does not support xdg_wm_base")
	}
	if logger == nil {
		logger = slog.Default()
	}
	style, err := cfg.StyleFor(config.ModeWindow, alert.Severity)
	if err != nil {
		return nil, err
	}
	return &WindowSession{
		session: session,
		cfg:     cfg,
		alert:   alert,
		style:   style,
		fnt:     fnt,
		runner:  runner,
		logger:  logger,
		reload:  make(chan *config.Config, 1),
	}, nil
}

// Reload queues a config for the event loop to apply. A newer config
// replaces one that has not been applied yet.
func (ws *WindowSession) Reload(cfg *config.Config) {
	select {
	case <-ws.reload:
	default:
	}
	ws.reload <- cfg
}

// Run maps the window and blocks dispatching events until it closes.
func (ws *WindowSession) Run() error {
	if err := ws.createWindow(); err != nil {
		return err
	}
	defer ws.destroy()

	for {
		ws.applyPendingConfig()
		if ws.rs.HandleEvents() {
			return nil
		}
		if err := ws.session.Dispatch(); err != nil {
			return err
		}
	}
}

func (ws *WindowSession) createWindow() error {
	wlSurface, err := ws.session.compositor.CreateSurface()
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	xdgSurface, err := ws.session.wmBase.GetXdgSurface(wlSurface)
	if err != nil {
		return fmt.Errorf("get xdg surface: %w", err)
	}
	toplevel, err := xdgSurface.GetToplevel()
	if err != nil {
		return fmt.Errorf("get toplevel: %w", err)
	}
	if err := toplevel.SetTitle("waynag: " + string(ws.alert.Severity)); err != nil {
		return err
	}
	if err := toplevel.SetAppID("waynag"); err != nil {
		return err
	}

	ws.wlSurface = wlSurface
	ws.xdgSurface = xdgSurface
	ws.toplevel = toplevel
	ws.pool = NewDoublePool(ws.session.shm, wlSurface, ws.logger)
	ws.rs = render.NewSurface(ws.alert, ws.style, ws.fnt, ws.pool, ws.runner, ws.logger)

	xdgSurface.AddListener(ws)
	toplevel.AddListener(ws)

	// Commit the role-bearing surface without a buffer to solicit the
	// first configure.
	wlSurface.Commit()

	ws.session.router.register(wlSurface.Id(), ws.rs)
	return nil
}

func (ws *WindowSession) destroy() {
	if ws.wlSurface == nil {
		return
	}
	ws.session.router.unregister(ws.wlSurface.Id())
	ws.toplevel.Destroy()
	ws.xdgSurface.Destroy()
	ws.wlSurface.Destroy()
	ws.pool.Destroy()
	ws.wlSurface = nil
}

func (ws *WindowSession) applyPendingConfig() {
	var cfg *config.Config
	select {
	case cfg = <-ws.reload:
	default:
		return
	}
	style, err := cfg.StyleFor(config.ModeWindow, ws.alert.Severity)
	if err != nil {
		ws.logger.Warn("reloaded config rejected", "error", err)
		return
	}
	ws.cfg = cfg
	ws.style = style
	ws.logger.Debug("applying reloaded config")
	ws.rs.SetStyle(style)
	ws.rs.Post(render.Refresh())
}

// HandleToplevelConfigure stages the size for the next surface configure.
// Zero means the client picks, resolved then against the configured
// initial window size.
func (ws *WindowSession) HandleToplevelConfigure(ev protocols.ToplevelConfigureEvent) {
	ws.pendingWidth = ev.Width
	ws.pendingHeight = ev.Height
}

// HandleXdgSurfaceConfigure commits the staged geometry. The configure is
// acked only when the renderer accepts it.
func (ws *WindowSession) HandleXdgSurfaceConfigure(ev protocols.XdgSurfaceConfigureEvent) {
	width := int(ws.pendingWidth)
	height := int(ws.pendingHeight)
	if width == 0 {
		width = ws.cfg.Window.Width
	}
	if height == 0 {
		height = ws.cfg.Window.Height
	}
	if ws.rs.Post(render.Configure(width, height)) {
		if err := ws.xdgSurface.AckConfigure(ev.Serial); err != nil {
			ws.logger.Warn("ack_configure failed", "error", err)
		}
	}
}

// HandleToplevelClose marks the window for teardown.
func (ws *WindowSession) HandleToplevelClose(protocols.ToplevelCloseEvent) {
	ws.rs.Post(render.Closed())
}
