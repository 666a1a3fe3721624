package grid

import "github.com/iburimskiy/wavegrid/internal/config"

// nearPlane keeps the perspective denominator away from zero at depth 1.
const nearPlane = 0.28

// Point is a lattice node after projection to screen space.
type Point struct {
	X, Y  float64
	Scale float64
}

// Camera projects normalized grid coordinates onto a surface.
type Camera struct {
	FOV     float64
	Horizon float64
	Spread  float64
}

// NewCamera copies the projection constants out of a profile camera.
func NewCamera(c config.Camera) Camera {
	return Camera{FOV: c.FOV, Horizon: c.Horizon, Spread: c.Spread}
}

// Scale returns the perspective factor for a depth in [0,1]; depth 1 is
// nearest the viewer.
func (c Camera) Scale(depth float64) float64 {
	return 1 / (c.FOV*(1-clamp(depth, 0, 1)) + nearPlane)
}

// Project maps (x, depth) displaced vertically by disp onto a w×h surface.
func (c Camera) Project(x, depth, disp, w, h float64) Point {
	depth = clamp(depth, 0, 1)
	p := c.Scale(depth)
	sx := w/2 + x*c.Spread*(w/2)*p
	baseY := c.Horizon*h + depth*(1-c.Horizon)*h*p
	return Point{X: sx, Y: baseY - disp*p, Scale: p}
}
