package config

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Audio tap
	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	LevelWindow     = 2048

	// Host presentation
	CanvasOpacity = 0.85
	TargetFPS     = 60
	FadeFrequency = 2.0
	FadeDamping   = 1.0

	// Particle placement keeps clear of the ground fade.
	ParticleBand = 0.7
)

// Background is the page color the canvas is layered on, as RGB in [0,1].
var Background = [3]float64{0.02, 0.03, 0.06}
