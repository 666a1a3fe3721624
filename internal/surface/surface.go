// Package surface tracks the logical and backing-store size of the drawing
// surface and the transform that maps logical units onto device pixels.
package surface

import (
	"log/slog"
	"math"

	"github.com/gogpu/gg"
)

// Descriptor is the drawing surface geometry for one configuration.
type Descriptor struct {
	Width, Height               float64 // logical (CSS-style) units
	BackingWidth, BackingHeight int     // physical pixels
	DPR                         float64
	Transform                   gg.Matrix
}

// Empty reports whether the surface has no drawable area.
func (d Descriptor) Empty() bool {
	return d.Width <= 0 || d.Height <= 0 || d.BackingWidth <= 0 || d.BackingHeight <= 0
}

// Resetter is notified with the new logical size after every resize.
type Resetter interface {
	Reset(w, h float64)
}

// Manager owns the current Descriptor. It is driven from the render task
// only; concurrent resize notifications are serialized by the loop queue.
type Manager struct {
	desc     Descriptor
	dpr      float64
	resetter Resetter
	log      *slog.Logger
}

// NewManager returns a manager with a zero-area surface at ratio 1.
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Manager{dpr: 1, desc: Configure(0, 0, 1), log: log}
}

// Attach registers the particle population (or anything else sized to the
// viewport) to be reinitialized on resize. nil detaches.
func (m *Manager) Attach(r Resetter) {
	m.resetter = r
	if r != nil && !m.desc.Empty() {
		r.Reset(m.desc.Width, m.desc.Height)
	}
}

// Configure computes the descriptor for a logical size and pixel ratio.
// A non-positive or non-finite ratio is treated as 1; negative sizes as 0.
func Configure(w, h, dpr float64) Descriptor {
	if !(dpr > 0) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	w, h = math.Max(w, 0), math.Max(h, 0)
	return Descriptor{
		Width:         w,
		Height:        h,
		BackingWidth:  int(math.Round(w * dpr)),
		BackingHeight: int(math.Round(h * dpr)),
		DPR:           dpr,
		Transform:     gg.Scale(dpr, dpr),
	}
}

// Configure replaces the current geometry and returns it.
func (m *Manager) Configure(w, h, dpr float64) Descriptor {
	prev := m.desc
	m.desc = Configure(w, h, dpr)
	m.dpr = m.desc.DPR
	if m.desc != prev {
		m.log.Debug("surface configured",
			"width", m.desc.Width, "height", m.desc.Height,
			"backing", [2]int{m.desc.BackingWidth, m.desc.BackingHeight},
			"dpr", m.desc.DPR)
	}
	return m.desc
}

// OnResize reconfigures at the last known ratio and reinitializes the
// attached population for the new size.
func (m *Manager) OnResize(w, h float64) Descriptor {
	d := m.Configure(w, h, m.dpr)
	if m.resetter != nil && !d.Empty() {
		m.resetter.Reset(d.Width, d.Height)
	}
	return d
}

// SetDevicePixelRatio changes the ratio, keeping the logical size.
func (m *Manager) SetDevicePixelRatio(dpr float64) Descriptor {
	return m.Configure(m.desc.Width, m.desc.Height, dpr)
}

// Current is the geometry frames must be drawn against.
func (m *Manager) Current() Descriptor { return m.desc }
