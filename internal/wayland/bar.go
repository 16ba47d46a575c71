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

// BarSession shows the alert as a screen-edge strip on every output,
// following outputs as they are plugged and unplugged. It returns once
// every bar has been dismissed or closed by the compositor.
type BarSession struct {
	session *Session
	cfg     *config.Config
	alert   *config.Alert
	style   config.Style
	fnt     *font.Font
	runner  render.Runner
	logger  *slog.Logger

	bars   map[uint32]*barSurface
	reload chan *config.Config
}

// barSurface is one per-output bar: the wl_surface, its layer surface role
// and the renderer behind them.
type barSurface struct {
	bs        *BarSession
	name      uint32
	wlSurface *wl.Surface
	layer     *protocols.LayerSurface
	pool      *DoublePool
	rs        *render.Surface
	destroyed bool
}

// NewBarSession prepares a bar session. The compositor must expose
// zwlr_layer_shell_v1.
func NewBarSession(session *Session, cfg *config.Config, alert *config.Alert, fnt *font.Font, runner render.Runner, logger *slog.Logger) (*BarSession, error) {
	if session.layerShell == nil {
		return nil, fmt.Errorf("compositor does not support zwlr_layer_shell_v1, try --window")
	}
	if logger == nil {
		logger = slog.Default()
	}
	style, err := cfg.StyleFor(config.ModeBar, alert.Severity)
	if err != nil {
		return nil, err
	}
	return &BarSession{
		session: session,
		cfg:     cfg,
		alert:   alert,
		style:   style,
		fnt:     fnt,
		runner:  runner,
		logger:  logger,
		bars:    make(map[uint32]*barSurface),
		reload:  make(chan *config.Config, 1),
	}, nil
}

// Reload queues a config for the event loop to apply. A newer config
// replaces one that has not been applied yet.
func (bs *BarSession) Reload(cfg *config.Config) {
	select {
	case <-bs.reload:
	default:
	}
	bs.reload <- cfg
}

// Run creates a bar on every current output, tracks hotplug, and blocks
// dispatching events until every bar is gone.
func (bs *BarSession) Run() error {
	for name, output := range bs.session.Outputs() {
		if err := bs.addOutput(name, output); err != nil {
			return err
		}
	}
	bs.session.SetOutputCallbacks(
		func(name uint32, output *wl.Output) {
			if err := bs.addOutput(name, output); err != nil {
				bs.logger.Warn("failed to create bar on new output", "output", name, "error", err)
			}
		},
		bs.removeOutput,
	)

	for {
		bs.applyPendingConfig()
		for name, b := range bs.bars {
			if b.rs.HandleEvents() {
				b.destroy()
				delete(bs.bars, name)
			}
		}
		if len(bs.bars) == 0 {
			return nil
		}
		if err := bs.session.Dispatch(); err != nil {
			return err
		}
	}
}

func (bs *BarSession) applyPendingConfig() {
	var cfg *config.Config
	select {
	case cfg = <-bs.reload:
	default:
		return
	}
	style, err := cfg.StyleFor(config.ModeBar, bs.alert.Severity)
	if err != nil {
		bs.logger.Warn("reloaded config rejected", "error", err)
		return
	}
	bs.cfg = cfg
	bs.style = style
	bs.logger.Debug("applying reloaded config")
	for _, b := range bs.bars {
		b.rs.SetStyle(style)
		b.rs.Post(render.Refresh())
	}
}

func (bs *BarSession) addOutput(name uint32, output *wl.Output) error {
	wlSurface, err := bs.session.compositor.CreateSurface()
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	layer, err := bs.session.layerShell.GetLayerSurface(wlSurface, output, protocols.LayerOverlay, "waynag")
	if err != nil {
		return fmt.Errorf("get layer surface: %w", err)
	}

	height := bs.cfg.Bar.Height
	if err := layer.SetSize(0, uint32(height)); err != nil {
		return err
	}
	anchor := protocols.AnchorTop | protocols.AnchorLeft | protocols.AnchorRight
	if bs.cfg.Bar.Edge == "bottom" {
		anchor = protocols.AnchorBottom | protocols.AnchorLeft | protocols.AnchorRight
	}
	if err := layer.SetAnchor(anchor); err != nil {
		return err
	}
	if err := layer.SetExclusiveZone(int32(height)); err != nil {
		return err
	}

	pool := NewDoublePool(bs.session.shm, wlSurface, bs.logger)
	rs := render.NewSurface(bs.alert, bs.style, bs.fnt, pool, bs.runner, bs.logger)

	b := &barSurface{
		bs:        bs,
		name:      name,
		wlSurface: wlSurface,
		layer:     layer,
		pool:      pool,
		rs:        rs,
	}
	layer.AddListener(b)

	// Commit the empty surface so the compositor sends the first
	// configure with the final width.
	wlSurface.Commit()

	bs.session.router.register(wlSurface.Id(), rs)
	bs.bars[name] = b
	bs.logger.Debug("bar created", "output", name)
	return nil
}

func (bs *BarSession) removeOutput(name uint32) {
	b, ok := bs.bars[name]
	if !ok {
		return
	}
	b.destroy()
	delete(bs.bars, name)
	bs.logger.Debug("bar removed with output", "output", name)
}

func (b *barSurface) destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.bs.session.router.unregister(b.wlSurface.Id())
	b.layer.Destroy()
	b.wlSurface.Destroy()
	b.pool.Destroy()
}

// HandleLayerSurfaceConfigure records the new geometry. The configure is
// acked only when the renderer accepts it; once a close is pending the
// surface is on its way out and must not ack.
func (b *barSurface) HandleLayerSurfaceConfigure(ev protocols.LayerSurfaceConfigureEvent) {
	if b.rs.Post(render.Configure(int(ev.Width), int(ev.Height))) {
		if err := b.layer.AckConfigure(ev.Serial); err != nil {
			b.bs.logger.Warn("ack_configure failed", "error", err)
		}
	}
}

// HandleLayerSurfaceClosed marks the bar for teardown.
func (b *barSurface) HandleLayerSurfaceClosed(protocols.LayerSurfaceClosedEvent) {
	b.rs.Post(render.Closed())
}
