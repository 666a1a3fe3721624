package particle

import (
	"math/rand"
	"testing"

	"github.com/iburimskiy/wavegrid/internal/config"
)

func newSystem(seed int64) *System {
	return New(config.ParticlesProfile().Particles, rand.New(rand.NewSource(seed)))
}

func TestResetPlacement(t *testing.T) {
	s := newSystem(42)
	s.Reset(800, 600)

	if s.Len() != 400 {
		t.Fatalf("Len() = %d, want 400", s.Len())
	}
	cfg := config.ParticlesProfile().Particles
	for i, p := range s.Particles() {
		if p.X < 0 || p.X >= 800 {
			t.Errorf("particle %d: x = %v outside [0, 800)", i, p.X)
		}
		if p.Y < 0 || p.Y >= 600*config.ParticleBand {
			t.Errorf("particle %d: y = %v outside upper band", i, p.Y)
		}
		if p.Speed < cfg.MinSpeed || p.Speed > cfg.MaxSpeed {
			t.Errorf("particle %d: speed = %v", i, p.Speed)
		}
	}
}

func TestResetReproducible(t *testing.T) {
	a, b := newSystem(9), newSystem(9)
	a.Reset(1024, 768)
	b.Reset(1024, 768)
	for i := range a.Particles() {
		if a.Particles()[i] != b.Particles()[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, a.Particles()[i], b.Particles()[i])
		}
	}
}

func TestUpdateRecycles(t *testing.T) {
	s := newSystem(3)
	s.Reset(300, 200)
	s.list[0].Y = 0.05
	s.list[0].Speed = 0.5

	s.Update(0)
	p := s.Particles()[0]
	if p.Y != 200 {
		t.Errorf("recycled y = %v, want 200", p.Y)
	}
	if p.X < 0 || p.X >= 300 {
		t.Errorf("recycled x = %v outside [0, 300)", p.X)
	}
}

func TestUpdateStaysInBounds(t *testing.T) {
	s := newSystem(5)
	s.Reset(640, 360)
	for step := 0; step < 5000; step++ {
		s.Update(float64(step) * 0.006)
		for i, p := range s.Particles() {
			if p.Y < 0 || p.Y > 360 {
				t.Fatalf("step %d particle %d: y = %v outside [0, 360]", step, i, p.Y)
			}
		}
	}
}

func TestUpdateBeforeResetIsNoop(t *testing.T) {
	s := newSystem(1)
	s.Update(1)
	for _, p := range s.Particles() {
		if p != (Particle{}) {
			t.Fatalf("particle moved before Reset: %+v", p)
		}
	}
}
