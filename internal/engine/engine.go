// Package engine mounts the wave grid onto a host surface: it wires the
// surface manager, renderer and loop together and owns their lifecycle.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/wavegrid/internal/config"
	"github.com/iburimskiy/wavegrid/internal/loop"
	"github.com/iburimskiy/wavegrid/internal/render"
	"github.com/iburimskiy/wavegrid/internal/surface"
)

// ErrMounted is returned by Mount on an engine that is already mounted.
var ErrMounted = errors.New("engine already mounted")

// ResizeSource delivers container size changes, possibly from another
// goroutine. Observe returns a func that ends the subscription.
type ResizeSource interface {
	Observe(fn func(w, h float64)) (cancel func(), err error)
}

// Engine is one instance of the animated grid. Resize, Configure,
// SetDevicePixelRatio and SetProfile may be called from any goroutine; the
// rest belong to the render task (the goroutine calling Tick).
type Engine struct {
	profile config.Profile
	rng     *rand.Rand
	log     *slog.Logger

	surface  *surface.Manager
	renderer *render.Renderer
	loop     *loop.Loop

	dc      *gg.Context
	cancel  func()
	mounted bool
	paused  bool
	ready   bool

	onWarning func(error)
	onReady   func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine and its renderer.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRand sets the random source for particle layouts.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// OnWarning registers a handler for non-fatal problems, such as a resize
// source that could not be observed.
func OnWarning(fn func(error)) Option {
	return func(e *Engine) { e.onWarning = fn }
}

// OnReady registers a handler called once after the first frame drawn
// following each Mount.
func OnReady(fn func()) Option {
	return func(e *Engine) { e.onReady = fn }
}

// New builds an unmounted engine for profile p.
func New(p config.Profile, opts ...Option) *Engine {
	e := &Engine{
		profile: p,
		log:     slog.New(slog.DiscardHandler),
		loop:    loop.New(),
	}
	for _, o := range opts {
		o(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}
	e.surface = surface.NewManager(e.log)
	e.renderer = e.newRenderer(p)
	return e
}

func (e *Engine) newRenderer(p config.Profile) *render.Renderer {
	return render.New(p, e.rng, render.WithLogger(e.log))
}

// Mount attaches the engine to dc and starts animating. dc may be nil while
// the host surface is not yet available; frames are skipped until
// SetContext provides one. src may be nil for fixed-size hosts.
func (e *Engine) Mount(dc *gg.Context, src ResizeSource) error {
	if e.mounted {
		return ErrMounted
	}
	e.dc = dc
	e.mounted = true
	e.ready = false
	e.attachParticles()

	if src != nil {
		cancel, err := src.Observe(e.Resize)
		if err != nil {
			e.warn(fmt.Errorf("observe resize: %w", err))
		} else {
			e.cancel = cancel
		}
	}

	e.log.Info("engine mounted", "profile", e.profile.Name)
	if !e.paused {
		e.start()
	}
	return nil
}

// Unmount stops the loop and releases the resize subscription. Calling it
// on an unmounted engine does nothing.
func (e *Engine) Unmount() {
	if !e.mounted {
		return
	}
	e.loop.Stop()
	e.renderer.Stop()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.surface.Attach(nil)
	e.dc = nil
	e.mounted = false
	e.ready = false
	e.log.Info("engine unmounted")
}

// SetContext swaps the drawing surface, nil included.
func (e *Engine) SetContext(dc *gg.Context) { e.dc = dc }

// Context is the current drawing surface.
func (e *Engine) Context() *gg.Context { return e.dc }

// Resize queues a container size change. Safe from any goroutine.
func (e *Engine) Resize(w, h float64) {
	e.loop.Post(func() {
		d := e.surface.OnResize(w, h)
		e.log.Debug("resize applied", "width", d.Width, "height", d.Height)
	})
}

// SetDevicePixelRatio queues a pixel ratio change. Safe from any goroutine.
func (e *Engine) SetDevicePixelRatio(dpr float64) {
	e.loop.Post(func() { e.surface.SetDevicePixelRatio(dpr) })
}

// Configure queues a full geometry change. Safe from any goroutine.
func (e *Engine) Configure(w, h, dpr float64) {
	e.loop.Post(func() {
		e.surface.Configure(w, h, dpr)
		if e.mounted {
			e.attachParticles()
		}
	})
}

// SetProfile queues a switch to profile p. The new renderer starts from
// time zero with a fresh particle layout. Safe from any goroutine.
func (e *Engine) SetProfile(p config.Profile) {
	e.loop.Post(func() {
		gain := 1.0
		if e.renderer != nil {
			gain = e.renderer.Gain()
		}
		e.profile = p
		e.renderer = e.newRenderer(p)
		e.renderer.SetGain(gain)
		if e.mounted {
			e.attachParticles()
			if e.loop.Running() {
				e.renderer.Start()
			}
		}
		e.log.Info("profile switched", "profile", p.Name)
	})
}

// Tick runs one refresh: queued events, then a frame if running.
func (e *Engine) Tick() bool { return e.loop.Tick() }

// Pause stops scheduling frames without unmounting.
func (e *Engine) Pause() {
	e.paused = true
	e.loop.Stop()
	e.renderer.Stop()
}

// Resume restarts a paused engine.
func (e *Engine) Resume() {
	e.paused = false
	if e.mounted {
		e.start()
	}
}

// Paused reports whether Pause is in effect.
func (e *Engine) Paused() bool { return e.paused }

// Ready reports whether a frame has been drawn since Mount.
func (e *Engine) Ready() bool { return e.ready }

// Visible reports whether the engine is mounted on a drawable surface.
func (e *Engine) Visible() bool {
	return e.mounted && e.dc != nil && !e.surface.Current().Empty()
}

// SetGain scales wave displacement within [0,1].
func (e *Engine) SetGain(g float64) { e.renderer.SetGain(g) }

// Profile is the active profile.
func (e *Engine) Profile() config.Profile { return e.profile }

// Renderer exposes the active renderer.
func (e *Engine) Renderer() *render.Renderer { return e.renderer }

// Surface is the current geometry.
func (e *Engine) Surface() surface.Descriptor { return e.surface.Current() }

// Loop exposes the scheduler, for hosts that drive it with Run.
func (e *Engine) Loop() *loop.Loop { return e.loop }

// Snapshot writes the last drawn frame to path as PNG.
func (e *Engine) Snapshot(path string) error {
	if e.dc == nil {
		return errors.New("snapshot: no surface mounted")
	}
	if err := e.dc.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	e.log.Info("snapshot saved", "path", path)
	return nil
}

// attachParticles hands the renderer's population, if any, to the surface
// manager so resizes reinitialize it.
func (e *Engine) attachParticles() {
	if ps := e.renderer.Particles(); ps != nil {
		e.surface.Attach(ps)
		return
	}
	e.surface.Attach(nil)
}

func (e *Engine) start() {
	e.renderer.Start()
	e.loop.Start(e.frame)
}

func (e *Engine) frame() {
	if !e.renderer.Frame(e.dc, e.surface.Current()) {
		return
	}
	if !e.ready {
		e.ready = true
		if e.onReady != nil {
			e.onReady()
		}
	}
}

func (e *Engine) warn(err error) {
	e.log.Warn("engine warning", "err", err)
	if e.onWarning != nil {
		e.onWarning(err)
	}
}
