// Package grid holds the pure per-frame geometry of the wave grid: the
// displacement field, the perspective camera and the sampled lattice.
package grid

import (
	"math"

	"github.com/iburimskiy/wavegrid/internal/config"
)

// Field is a sum of weighted sinusoids over (x, depth, time).
type Field struct {
	amplitude float64
	terms     []config.Term
	gain      float64
}

// NewField builds a field from a profile's amplitude and terms.
func NewField(amplitude float64, terms []config.Term) *Field {
	t := make([]config.Term, len(terms))
	copy(t, terms)
	return &Field{amplitude: amplitude, terms: t, gain: 1}
}

// SetGain scales the field output. Values are clamped to [0,1] so the
// output never leaves Bound.
func (f *Field) SetGain(g float64) {
	f.gain = clamp(g, 0, 1)
}

// Gain reports the current output gain.
func (f *Field) Gain() float64 { return f.gain }

// Sample returns the vertical displacement at one lattice position.
func (f *Field) Sample(x, depth, t float64) float64 {
	var sum float64
	for _, term := range f.terms {
		sum += term.Weight * math.Sin(term.KX*x+term.KZ*depth+term.Speed*t)
	}
	return sum * f.amplitude * f.gain
}

// Bound is the largest magnitude Sample can return at full gain.
func (f *Field) Bound() float64 {
	var w float64
	for _, term := range f.terms {
		w += math.Abs(term.Weight)
	}
	return math.Abs(f.amplitude) * w
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
