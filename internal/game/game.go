// Package game hosts the wave grid engine in an ebiten window: ebiten's
// tick is the refresh source and Layout is the resize notification.
package game

import (
	"errors"
	"image/color"
	"log/slog"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/wavegrid/internal/audio"
	"github.com/iburimskiy/wavegrid/internal/config"
	"github.com/iburimskiy/wavegrid/internal/engine"
)

// layoutSource turns ebiten Layout calls into engine resize notifications.
type layoutSource struct {
	fn   func(w, h float64)
	w, h int
}

func (s *layoutSource) Observe(fn func(w, h float64)) (func(), error) {
	if s.fn != nil {
		return nil, errors.New("layout already observed")
	}
	s.fn = fn
	return func() { s.fn = nil }, nil
}

func (s *layoutSource) layout(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	if s.fn != nil {
		s.fn(float64(w), float64(h))
	}
}

type game struct {
	engine *engine.Engine
	dc     *gg.Context
	frame  *ebiten.Image
	source *layoutSource

	// audio, optional
	player   *audio.Player
	envelope *audio.Envelope

	// mount transition
	fade             harmonica.Spring
	fadePos, fadeVel float64

	dprOverride float64
	dpr         float64
	started     time.Time

	log     *slog.Logger
	lastErr error
}

// Options configures the window host.
type Options struct {
	Profile config.Profile
	DPR     float64
	Audio   string
	Seed    int64
	Log     *slog.Logger
}

// New builds the host and mounts the engine. The caller runs it with
// ebiten.RunGame and calls Close afterwards.
func New(o Options) (*game, error) {
	log := o.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	g := &game{
		source:      &layoutSource{},
		fade:        harmonica.NewSpring(harmonica.FPS(config.TargetFPS), config.FadeFrequency, config.FadeDamping),
		dprOverride: o.DPR,
		started:     time.Now(),
		log:         log,
	}
	g.engine = engine.New(o.Profile,
		engine.WithLogger(log),
		engine.WithRand(newRand(o.Seed)),
		engine.OnWarning(g.warn),
		engine.OnReady(func() { log.Info("first frame drawn") }),
	)

	if o.Audio != "" {
		p, err := audio.Play(o.Audio, log)
		if err != nil {
			// The grid runs fine without sound.
			g.warn(err)
		} else {
			g.player = p
			g.envelope = audio.NewEnvelope(config.TargetFPS, 0.6)
		}
	}

	g.dc = gg.NewContext(1, 1)
	if err := g.engine.Mount(g.dc, g.source); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		next, err := config.Lookup(config.Next(g.engine.Profile().Name))
		if err == nil {
			g.engine.SetProfile(next)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.saveSnapshot(); err != nil {
			g.lastErr = err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.player != nil && !g.engine.Paused() {
		g.engine.SetGain(g.envelope.Step(g.player.Level()))
	}
	g.engine.Tick()

	target := 0.0
	if g.engine.Visible() && g.engine.Ready() {
		target = 1
	}
	g.fadePos, g.fadeVel = g.fade.Update(g.fadePos, g.fadeVel, target)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{
		R: uint8(config.Background[0] * 255),
		G: uint8(config.Background[1] * 255),
		B: uint8(config.Background[2] * 255),
		A: 255,
	})

	if g.engine.Ready() {
		g.upload()
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(float32(config.CanvasOpacity * clamp01(g.fadePos)))
		screen.DrawImage(g.frame, op)
	}

	if status := g.status(); status != "" {
		ebitenutil.DebugPrintAt(screen, status, 12, 12)
	}
}

// upload copies the gg pixmap into the ebiten frame image, reallocating it
// when the backing store changed size.
func (g *game) upload() {
	w, h := g.dc.Width(), g.dc.Height()
	if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(w, h)
	}
	g.frame.WritePixels(g.dc.ResizeTarget().Data())
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := g.dprOverride
	if dpr <= 0 {
		dpr = ebiten.Monitor().DeviceScaleFactor()
	}
	if dpr != g.dpr {
		g.dpr = dpr
		g.engine.SetDevicePixelRatio(dpr)
	}
	g.source.layout(outsideWidth, outsideHeight)
	return int(float64(outsideWidth) * dpr), int(float64(outsideHeight) * dpr)
}

func (g *game) togglePause() {
	if g.engine.Paused() {
		g.engine.Resume()
	} else {
		g.engine.Pause()
	}
	if g.player != nil {
		g.player.SetPaused(g.engine.Paused())
	}
}

func (g *game) saveSnapshot() error {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Frame"),
		zenity.Filename(snapshotName(time.Now())),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.engine.Snapshot(filename)
}

// warn records a non-fatal problem and raises a desktop notification
// without blocking the frame.
func (g *game) warn(err error) {
	g.lastErr = err
	g.log.Warn("host warning", "err", err)
	go func() {
		if nerr := zenity.Notify(err.Error(), zenity.Title("wavegrid")); nerr != nil {
			g.log.Debug("notification failed", "err", nerr)
		}
	}()
}

func (g *game) status() string {
	var s string
	if g.engine.Paused() {
		s = statusLine(g.engine.Profile().Name, "paused", time.Since(g.started))
	}
	if g.lastErr != nil {
		if s != "" {
			s += " | "
		}
		s += "Error: " + g.lastErr.Error()
	}
	return s
}

// Close unmounts the engine and stops audio.
func (g *game) Close() error {
	g.engine.Unmount()
	var err error
	if g.player != nil {
		err = g.player.Close()
	}
	if g.frame != nil {
		g.frame.Deallocate()
	}
	return errors.Join(err, g.dc.Close())
}
