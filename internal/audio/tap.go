// Package audio plays an optional soundtrack and turns its loudness into a
// displacement gain for the wave grid.
package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records the last N samples into a ring
// buffer so the render task can read recent loudness. Stream runs on the
// speaker goroutine; Level on the render task.
type Tap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	filled    bool
	mu        sync.RWMutex
}

// NewTap wraps src with a ring of ringSize stereo samples.
func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
				t.filled = true
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Level is the compressed RMS loudness of the most recent n samples, in
// [0,1]. It is 0 before anything has been streamed.
func (t *Tap) Level(n int) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	avail := t.nextIndex
	if t.filled {
		avail = len(t.buffer)
	}
	if n > avail {
		n = avail
	}
	if n <= 0 {
		return 0
	}

	var sumSquares float64
	idx := t.nextIndex
	for i := 0; i < n; i++ {
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		mono := (t.buffer[idx][0] + t.buffer[idx][1]) * 0.5
		sumSquares += mono * mono
	}
	rms := math.Sqrt(sumSquares / float64(n))
	// Aggressive compression so quiet passages still move the grid.
	return math.Min(1, math.Pow(rms, 0.3))
}
