package render

import (
	"github.com/gogpu/gg"
)

// hsla builds a color from hue in degrees, saturation and lightness in
// percent, and alpha in [0,1].
func hsla(h, s, l, a float64) gg.RGBA {
	c := gg.HSL(h, clamp01(s/100), clamp01(l/100))
	c.A = clamp01(a)
	return c
}

func setHSLA(dc *gg.Context, h, s, l, a float64) {
	c := hsla(h, s, l, a)
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

// transparent keeps the hue of c so gradient midpoints do not grey out.
func transparent(c gg.RGBA) gg.RGBA {
	c.A = 0
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
