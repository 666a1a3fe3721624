package audio

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Envelope smooths a loudness level with a critically damped spring and
// maps it to a gain in [MinGain, 1].
type Envelope struct {
	MinGain float64

	spring harmonica.Spring
	pos    float64
	vel    float64
}

// NewEnvelope returns an envelope stepped fps times per second.
func NewEnvelope(fps int, minGain float64) *Envelope {
	return &Envelope{
		MinGain: math.Max(0, math.Min(1, minGain)),
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Step advances the spring toward level and returns the resulting gain.
func (e *Envelope) Step(level float64) float64 {
	level = math.Max(0, math.Min(1, level))
	e.pos, e.vel = e.spring.Update(e.pos, e.vel, level)
	return e.Gain()
}

// Gain is the current gain without advancing the spring.
func (e *Envelope) Gain() float64 {
	p := math.Max(0, math.Min(1, e.pos))
	return e.MinGain + (1-e.MinGain)*p
}
