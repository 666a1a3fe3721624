// Package particle keeps the ambient particle population that drifts up
// through the upper part of the surface.
package particle

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/wavegrid/internal/config"
)

// Particle is one ambient mote, in logical surface units.
type Particle struct {
	X, Y    float64
	Size    float64
	Speed   float64
	Opacity float64
}

// System owns a fixed-size population and the random source that places it.
type System struct {
	cfg  config.Particles
	band float64
	rng  *rand.Rand
	list []Particle
	w, h float64
}

// New returns an empty system; Reset places the particles once a size is known.
func New(cfg config.Particles, rng *rand.Rand) *System {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &System{
		cfg:  cfg,
		band: config.ParticleBand,
		rng:  rng,
		list: make([]Particle, cfg.Count),
	}
}

// Reset re-seeds every particle for a w×h surface: x uniform across the
// width, y within the upper band of the height.
func (s *System) Reset(w, h float64) {
	s.w, s.h = w, h
	for i := range s.list {
		s.list[i] = Particle{
			X:       s.rng.Float64() * w,
			Y:       s.rng.Float64() * h * s.band,
			Size:    s.between(s.cfg.MinSize, s.cfg.MaxSize),
			Speed:   s.between(s.cfg.MinSpeed, s.cfg.MaxSpeed),
			Opacity: s.between(s.cfg.MinOpacity, s.cfg.MaxOpacity),
		}
	}
}

// Update moves every particle up by its speed with a small horizontal
// wobble. A particle that leaves the top re-enters at the bottom edge with
// a fresh x.
func (s *System) Update(t float64) {
	if s.w <= 0 || s.h <= 0 {
		return
	}
	for i := range s.list {
		p := &s.list[i]
		p.Y -= p.Speed
		p.X += math.Sin(t*2+float64(i)) * s.cfg.Wobble * 0.1
		if p.Y < 0 {
			p.Y = s.h
			p.X = s.rng.Float64() * s.w
		}
		if p.Y > s.h {
			p.Y = s.h
		}
	}
}

// Particles exposes the current population for drawing. Callers must not
// retain the slice across frames.
func (s *System) Particles() []Particle { return s.list }

// Len is the population size.
func (s *System) Len() int { return len(s.list) }

func (s *System) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
