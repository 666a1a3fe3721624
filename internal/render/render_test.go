package render

import (
	"image"
	"math"
	"math/rand"
	"testing"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/wavegrid/internal/config"
	"github.com/iburimskiy/wavegrid/internal/surface"
)

func opaquePixels(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				n++
			}
		}
	}
	return n
}

func TestFrameNilContext(t *testing.T) {
	r := New(config.Grid(), nil)
	if r.Frame(nil, surface.Configure(200, 100, 1)) {
		t.Error("Frame drew on a nil context")
	}
	if r.Time() != 0 {
		t.Errorf("time advanced to %v on a skipped frame", r.Time())
	}
}

func TestFrameZeroArea(t *testing.T) {
	r := New(config.Grid(), nil)
	dc := gg.NewContext(10, 10)
	defer func() { _ = dc.Close() }()

	for _, d := range []surface.Descriptor{
		surface.Configure(0, 100, 1),
		surface.Configure(100, 0, 2),
		{},
	} {
		if r.Frame(dc, d) {
			t.Errorf("Frame drew on empty surface %+v", d)
		}
	}
	if r.Time() != 0 {
		t.Errorf("time advanced to %v on skipped frames", r.Time())
	}
}

func TestFrameAdvancesTime(t *testing.T) {
	p := config.Grid()
	r := New(p, nil)
	dc := gg.NewContext(64, 48)
	defer func() { _ = dc.Close() }()
	d := surface.Configure(64, 48, 1)

	const n = 25
	for i := 0; i < n; i++ {
		if !r.Frame(dc, d) {
			t.Fatalf("frame %d skipped", i)
		}
	}
	if want := n * p.TimeStep; math.Abs(r.Time()-want) > 1e-12 {
		t.Errorf("Time() = %v after %d frames, want %v", r.Time(), n, want)
	}
}

func TestFrameDraws(t *testing.T) {
	for _, p := range []config.Profile{config.Grid(), config.ParticlesProfile()} {
		t.Run(p.Name, func(t *testing.T) {
			r := New(p, rand.New(rand.NewSource(1)))
			dc := gg.NewContext(160, 90)
			defer func() { _ = dc.Close() }()
			d := surface.Configure(160, 90, 1)
			if ps := r.Particles(); ps != nil {
				ps.Reset(d.Width, d.Height)
			}
			r.Frame(dc, d)
			if opaquePixels(dc.Image()) == 0 {
				t.Error("frame left the surface fully transparent")
			}
			if want := (p.Camera.Cols + 1) * (p.Camera.Rows + 1); r.Table().Len() != want {
				t.Errorf("table has %d points, want %d", r.Table().Len(), want)
			}
		})
	}
}

func TestFrameResizesBackingStore(t *testing.T) {
	r := New(config.Grid(), nil)
	dc := gg.NewContext(10, 10)
	defer func() { _ = dc.Close() }()

	r.Frame(dc, surface.Configure(120, 80, 2))
	if dc.Width() != 240 || dc.Height() != 160 {
		t.Errorf("backing store = %dx%d, want 240x160", dc.Width(), dc.Height())
	}
}

func TestFrameDeterministic(t *testing.T) {
	p := config.Grid()
	d := surface.Configure(80, 60, 1)
	a, b := New(p, nil), New(p, nil)
	dca, dcb := gg.NewContext(80, 60), gg.NewContext(80, 60)
	defer func() { _ = dca.Close(); _ = dcb.Close() }()

	for i := 0; i < 3; i++ {
		a.Frame(dca, d)
		b.Frame(dcb, d)
	}
	for c := 0; c <= p.Camera.Cols; c++ {
		for row := 0; row <= p.Camera.Rows; row++ {
			if a.Table().At(c, row) != b.Table().At(c, row) {
				t.Fatalf("tables diverge at (%d, %d)", c, row)
			}
		}
	}
}

func TestStateTransitions(t *testing.T) {
	r := New(config.Grid(), nil)
	if r.State() != Idle {
		t.Fatalf("new renderer state = %v, want idle", r.State())
	}
	r.Start()
	if r.State() != Running {
		t.Errorf("after Start state = %v, want running", r.State())
	}
	r.Stop()
	r.Stop()
	if r.State() != Idle {
		t.Errorf("after Stop state = %v, want idle", r.State())
	}
}

func TestHueStaysInBand(t *testing.T) {
	for _, p := range []config.Profile{config.Grid(), config.ParticlesProfile()} {
		r := New(p, nil)
		pal := p.Palette
		for i := 0; i < 10000; i++ {
			r.time = float64(i) * 0.37
			h := r.Hue()
			if h < pal.BaseHue-pal.HueRange || h > pal.BaseHue+pal.HueRange {
				t.Fatalf("%s: hue %v outside %v±%v", p.Name, h, pal.BaseHue, pal.HueRange)
			}
			if h < 170 || h > 260 {
				t.Fatalf("%s: hue %v left the cyan/blue/purple band", p.Name, h)
			}
		}
	}
}

func TestSetGainFlattensGrid(t *testing.T) {
	p := config.Grid()
	r := New(p, nil)
	r.SetGain(0)
	dc := gg.NewContext(100, 100)
	defer func() { _ = dc.Close() }()
	d := surface.Configure(100, 100, 1)
	r.Frame(dc, d)

	for c := 0; c <= p.Camera.Cols; c++ {
		a, b := r.Table().At(c, 5), r.Table().At(0, 5)
		if math.Abs(a.Y-b.Y) > 1e-9 {
			t.Fatalf("row 5 not flat with zero gain: col %d y=%v, col 0 y=%v", c, a.Y, b.Y)
		}
	}
}
