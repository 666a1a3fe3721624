// Package render draws one frame of the wave grid onto a gg context.
package render

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/wavegrid/internal/config"
	"github.com/iburimskiy/wavegrid/internal/grid"
	"github.com/iburimskiy/wavegrid/internal/particle"
	"github.com/iburimskiy/wavegrid/internal/surface"
)

// State is the scheduling state of a Renderer.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// glowRows is how many of the nearest rows carry glow dots.
const glowRows = 4

// Renderer owns all per-frame mutable state: the time accumulator, the
// projected lattice and the particle population.
type Renderer struct {
	profile   config.Profile
	field     *grid.Field
	cam       grid.Camera
	table     *grid.Table
	particles *particle.System

	time  float64
	state State
	log   *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// New builds a renderer for p. rng seeds the particle population and may
// be nil when the profile has no particles.
func New(p config.Profile, rng *rand.Rand, opts ...Option) *Renderer {
	r := &Renderer{
		profile: p,
		field:   grid.NewField(p.Amplitude, p.Terms),
		cam:     grid.NewCamera(p.Camera),
		table:   grid.NewTable(grid.Lattice{Cols: p.Camera.Cols, Rows: p.Camera.Rows}),
		log:     slog.New(slog.DiscardHandler),
	}
	if p.Particles.Count > 0 {
		r.particles = particle.New(p.Particles, rng)
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Start moves the renderer to Running.
func (r *Renderer) Start() { r.state = Running }

// Stop moves the renderer to Idle.
func (r *Renderer) Stop() { r.state = Idle }

// State reports Idle or Running.
func (r *Renderer) State() State { return r.state }

// Time is the accumulated animation time.
func (r *Renderer) Time() float64 { return r.time }

// Profile is the configuration the renderer was built with.
func (r *Renderer) Profile() config.Profile { return r.profile }

// Particles is the ambient population, nil for profiles without one.
func (r *Renderer) Particles() *particle.System { return r.particles }

// Table is the lattice projected by the most recent frame.
func (r *Renderer) Table() *grid.Table { return r.table }

// SetGain scales wave displacement within [0,1].
func (r *Renderer) SetGain(g float64) { r.field.SetGain(g) }

// Gain is the current displacement gain.
func (r *Renderer) Gain() float64 { return r.field.Gain() }

// Hue is the base hue for the current time.
func (r *Renderer) Hue() float64 {
	pal := r.profile.Palette
	return pal.BaseHue + math.Sin(r.time*pal.HueSpeed)*pal.HueRange
}

// Frame draws one frame onto dc using geometry d and advances time. A nil
// context or an empty surface is skipped without advancing time. It
// reports whether anything was drawn.
func (r *Renderer) Frame(dc *gg.Context, d surface.Descriptor) bool {
	if dc == nil || d.Empty() {
		return false
	}
	if dc.Width() != d.BackingWidth || dc.Height() != d.BackingHeight {
		if err := dc.Resize(d.BackingWidth, d.BackingHeight); err != nil {
			r.log.Warn("frame skipped: backing store resize failed", "err", err)
			return false
		}
	}

	dc.Identity()
	dc.Clear()
	dc.SetTransform(d.Transform)

	w, h := d.Width, d.Height
	hue := r.Hue()
	fx := r.profile.Effects

	if fx.Background {
		r.drawBackground(dc, d, hue)
	}

	r.table.Fill(r.field, r.cam, r.time, w, h)
	r.drawRows(dc, hue)
	r.drawColumns(dc, hue)
	r.drawGlows(dc, d, hue)
	r.drawHorizon(dc, d, hue)

	if fx.CenterGlow {
		r.drawCenterGlow(dc, d, hue)
	}
	if r.particles != nil {
		r.particles.Update(r.time)
		r.drawParticles(dc, hue)
	}
	if fx.Scanlines {
		r.drawScanlines(dc, d)
	}
	if fx.BottomFade {
		r.drawBottomFade(dc, d)
	}

	r.time += r.profile.TimeStep
	return true
}

func (r *Renderer) drawRows(dc *gg.Context, hue float64) {
	pal := r.profile.Palette
	tb := r.table
	for row := tb.Rows; row >= 0; row-- {
		z := tb.Depth(row)
		alpha := math.Max(0, math.Min(0.28, z*0.3))
		if alpha < 0.01 {
			continue
		}
		first := tb.At(0, row)
		dc.MoveTo(first.X, first.Y)
		for c := 1; c <= tb.Cols; c++ {
			a, b := tb.At(c-1, row), tb.At(c, row)
			dc.QuadraticTo(a.X, a.Y, (a.X+b.X)/2, (a.Y+b.Y)/2)
		}
		setHSLA(dc, hue, pal.Saturation, pal.Lightness+z*15, alpha)
		dc.SetLineWidth(0.8 + z*0.4)
		r.stroke(dc)
	}
}

func (r *Renderer) drawColumns(dc *gg.Context, hue float64) {
	pal := r.profile.Palette
	tb := r.table
	for c := 0; c <= tb.Cols; c++ {
		fade := 1 - math.Abs(tb.X(c))*0.5
		first := tb.At(c, 0)
		dc.MoveTo(first.X, first.Y)
		for row := 1; row <= tb.Rows; row++ {
			a, b := tb.At(c, row-1), tb.At(c, row)
			dc.QuadraticTo(a.X, a.Y, (a.X+b.X)/2, (a.Y+b.Y)/2)
		}
		setHSLA(dc, hue+10, pal.Saturation-5, pal.Lightness-5, 0.12*fade)
		dc.SetLineWidth(0.55)
		r.stroke(dc)
	}
}

func (r *Renderer) drawGlows(dc *gg.Context, d surface.Descriptor, hue float64) {
	tb := r.table
	first := max(tb.Rows-glowRows, 0)
	for row := first; row <= tb.Rows; row++ {
		alpha := float64(row-(tb.Rows-glowRows)) / glowRows * 0.3
		if alpha < 0.02 {
			continue
		}
		for c := 0; c <= tb.Cols; c++ {
			p := tb.At(c, row)
			radius := 3 * p.Scale

			cx, cy := dc.TransformPoint(p.X, p.Y)
			g := gg.NewRadialGradientBrush(cx, cy, 0, radius*d.DPR)
			g.AddColorStop(0, hsla(hue+5, 90, 75, alpha*0.6))
			g.AddColorStop(0.5, hsla(hue+10, 85, 70, alpha*0.3))
			g.AddColorStop(1, hsla(hue+15, 80, 65, 0))
			dc.SetFillBrush(g)
			dc.DrawCircle(p.X, p.Y, radius)
			r.fill(dc)

			setHSLA(dc, hue, 95, 85, alpha)
			dc.DrawCircle(p.X, p.Y, 0.6*p.Scale)
			r.fill(dc)
		}
	}
}

func (r *Renderer) drawHorizon(dc *gg.Context, d surface.Descriptor, hue float64) {
	top := r.cam.Horizon * d.Height
	band := d.Height * 0.12
	start := hsla(hue-10, 70, 50, 0.06)
	r.fillVertical(dc, d, top, band, start, transparent(start))
}

func (r *Renderer) drawBackground(dc *gg.Context, d surface.Descriptor, hue float64) {
	r.fillVertical(dc, d, 0, d.Height, hsla(hue+25, 45, 7, 1), hsla(hue, 50, 3, 1))
}

func (r *Renderer) drawCenterGlow(dc *gg.Context, d surface.Descriptor, hue float64) {
	x, y := d.Width/2, r.cam.Horizon*d.Height
	radius := math.Max(d.Width, d.Height) * 0.45
	cx, cy := dc.TransformPoint(x, y)
	inner := hsla(hue, 80, 55, 0.08)
	g := gg.NewRadialGradientBrush(cx, cy, 0, radius*d.DPR)
	g.AddColorStop(0, inner)
	g.AddColorStop(1, transparent(inner))
	dc.SetFillBrush(g)
	dc.DrawRectangle(0, 0, d.Width, d.Height)
	r.fill(dc)
}

func (r *Renderer) drawParticles(dc *gg.Context, hue float64) {
	for _, p := range r.particles.Particles() {
		setHSLA(dc, hue+20, 80, 80, p.Opacity)
		dc.DrawCircle(p.X, p.Y, p.Size)
		r.fill(dc)
	}
}

func (r *Renderer) drawScanlines(dc *gg.Context, d surface.Descriptor) {
	dc.SetRGBA(0, 0, 0, 0.06)
	for y := 0.0; y < d.Height; y += 3 {
		dc.DrawRectangle(0, y, d.Width, 1)
	}
	r.fill(dc)
}

func (r *Renderer) drawBottomFade(dc *gg.Context, d surface.Descriptor) {
	bg := gg.RGB(config.Background[0], config.Background[1], config.Background[2])
	top := d.Height * 0.75
	r.fillVertical(dc, d, top, d.Height-top, transparent(bg), bg)
}

// fillVertical fills the full-width band [top, top+height) with a vertical
// two-stop gradient. Gradients sample in device pixels, so the end points
// go through the context transform.
func (r *Renderer) fillVertical(dc *gg.Context, d surface.Descriptor, top, height float64, from, to gg.RGBA) {
	if height <= 0 {
		return
	}
	x0, y0 := dc.TransformPoint(0, top)
	x1, y1 := dc.TransformPoint(0, top+height)
	g := gg.NewLinearGradientBrush(x0, y0, x1, y1)
	g.AddColorStop(0, from)
	g.AddColorStop(1, to)
	dc.SetFillBrush(g)
	dc.DrawRectangle(0, top, d.Width, height)
	r.fill(dc)
}

func (r *Renderer) stroke(dc *gg.Context) {
	if err := dc.Stroke(); err != nil {
		r.log.Debug("stroke failed", "err", err)
	}
}

func (r *Renderer) fill(dc *gg.Context) {
	if err := dc.Fill(); err != nil {
		r.log.Debug("fill failed", "err", err)
	}
}
