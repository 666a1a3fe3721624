// Package export renders the engine without a window, writing numbered PNG
// frames to a directory.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/wavegrid/internal/engine"
)

// Job describes one headless export.
type Job struct {
	Width, Height float64
	DPR           float64
	Frames        int
	Dir           string
	// Interval between ticks; zero renders as fast as the ticker allows.
	Interval time.Duration
}

// Run mounts e on an offscreen surface and writes job.Frames frames as
// frame-NNNN.png. The engine is unmounted before Run returns.
func Run(ctx context.Context, e *engine.Engine, job Job, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(job.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	interval := job.Interval
	if interval <= 0 {
		interval = time.Millisecond
	}

	dc := gg.NewContext(1, 1)
	defer func() { _ = dc.Close() }()
	if err := e.Mount(dc, nil); err != nil {
		return err
	}
	defer e.Unmount()
	e.Configure(job.Width, job.Height, job.DPR)

	var (
		written int
		werr    error
	)
	stop := func() bool {
		if !e.Ready() {
			return false
		}
		path := filepath.Join(job.Dir, FrameName(written))
		if werr = e.Snapshot(path); werr != nil {
			return true
		}
		written++
		return written >= job.Frames
	}

	start := time.Now()
	if err := e.Loop().Run(ctx, interval, stop); err != nil {
		return err
	}
	if werr != nil {
		return werr
	}
	log.Info("export finished", "frames", written, "dir", job.Dir, "elapsed", time.Since(start))
	return nil
}

// FrameName is the file name of frame i.
func FrameName(i int) string {
	return fmt.Sprintf("frame-%04d.png", i)
}
