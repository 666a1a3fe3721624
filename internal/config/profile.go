package config

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownProfile is returned by Lookup for names with no registered profile.
var ErrUnknownProfile = errors.New("unknown profile")

// Camera holds the projection and lattice constants of a profile.
type Camera struct {
	FOV     float64
	Horizon float64
	Spread  float64
	Cols    int
	Rows    int
}

// Term is one sinusoid of the wave field:
// Weight * sin(KX*x + KZ*depth + Speed*t).
type Term struct {
	Weight float64
	KX     float64
	KZ     float64
	Speed  float64
}

// Palette describes the hue band and fixed saturation/lightness, in
// degrees and percent.
type Palette struct {
	BaseHue    float64
	HueSpeed   float64
	HueRange   float64
	Saturation float64
	Lightness  float64
}

// Particles configures the ambient particle population. Count 0 disables it.
type Particles struct {
	Count      int
	MinSize    float64
	MaxSize    float64
	MinSpeed   float64
	MaxSpeed   float64
	MinOpacity float64
	MaxOpacity float64
	Wobble     float64
}

// Effects toggles the screen-space passes beyond the grid itself.
type Effects struct {
	Background bool
	CenterGlow bool
	Scanlines  bool
	BottomFade bool
}

// Profile is one complete, immutable configuration of the engine.
type Profile struct {
	Name      string
	Camera    Camera
	Amplitude float64
	TimeStep  float64
	Terms     []Term
	Palette   Palette
	Particles Particles
	Effects   Effects
}

// Grid is the plain wave grid: three terms, cyan band, no particles.
func Grid() Profile {
	return Profile{
		Name: "grid",
		Camera: Camera{
			FOV:     0.68,
			Horizon: 0.38,
			Spread:  1.75,
			Cols:    28,
			Rows:    22,
		},
		Amplitude: 28,
		TimeStep:  0.008,
		Terms: []Term{
			{Weight: 1.0, KX: 3.5, KZ: 2.8, Speed: 1.4},
			{Weight: 0.45, KX: 1.8, KZ: -3.2, Speed: 0.9},
			{Weight: 0.25, KX: 5.0, KZ: 1.5, Speed: -1.1},
		},
		Palette: Palette{
			BaseHue:    195,
			HueSpeed:   0.15,
			HueRange:   15,
			Saturation: 75,
			Lightness:  62,
		},
	}
}

// ParticlesProfile is the denser variant with a fourth detail term, a blue to
// purple band, ambient particles and the full set of overlays.
func ParticlesProfile() Profile {
	return Profile{
		Name: "particles",
		Camera: Camera{
			FOV:     0.72,
			Horizon: 0.42,
			Spread:  2.0,
			Cols:    36,
			Rows:    26,
		},
		Amplitude: 32,
		TimeStep:  0.006,
		Terms: []Term{
			{Weight: 1.0, KX: 3.0, KZ: 2.4, Speed: 1.2},
			{Weight: 0.45, KX: 1.6, KZ: -2.9, Speed: 0.8},
			{Weight: 0.25, KX: 4.6, KZ: 1.8, Speed: -1.3},
			{Weight: 0.15, KX: 7.2, KZ: -4.1, Speed: 1.9},
		},
		Palette: Palette{
			BaseHue:    215,
			HueSpeed:   0.12,
			HueRange:   25,
			Saturation: 70,
			Lightness:  60,
		},
		Particles: Particles{
			Count:      400,
			MinSize:    0.4,
			MaxSize:    1.6,
			MinSpeed:   0.1,
			MaxSpeed:   0.5,
			MinOpacity: 0.1,
			MaxOpacity: 0.5,
			Wobble:     0.3,
		},
		Effects: Effects{
			Background: true,
			CenterGlow: true,
			Scanlines:  true,
			BottomFade: true,
		},
	}
}

var profiles = map[string]func() Profile{
	"grid":      Grid,
	"particles": ParticlesProfile,
}

// Lookup returns the profile registered under name.
func Lookup(name string) (Profile, error) {
	fn, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (have %v)", ErrUnknownProfile, name, Names())
	}
	return fn(), nil
}

// Names lists registered profile names in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Next returns the profile name following current in Names order, wrapping.
func Next(current string) string {
	names := Names()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
