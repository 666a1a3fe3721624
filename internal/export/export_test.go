package export

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/wavegrid/internal/config"
	"github.com/iburimskiy/wavegrid/internal/engine"
)

func TestRunWritesFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	e := engine.New(config.ParticlesProfile(), engine.WithRand(rand.New(rand.NewSource(2))))

	job := Job{Width: 64, Height: 36, DPR: 2, Frames: 3, Dir: dir}
	if err := Run(context.Background(), e, job, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := os.Stat(filepath.Join(dir, FrameName(i))); err != nil {
			t.Errorf("frame %d: %v", i, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, FrameName(3))); !os.IsNotExist(err) {
		t.Errorf("extra frame written (err = %v)", err)
	}
	if e.Visible() {
		t.Error("engine still mounted after Run")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := engine.New(config.Grid())
	err := Run(ctx, e, Job{Width: 10, Height: 10, DPR: 1, Frames: 1, Dir: t.TempDir()}, nil)
	if err == nil {
		t.Error("Run with a cancelled context returned nil")
	}
}

func TestFrameName(t *testing.T) {
	if got := FrameName(7); got != "frame-0007.png" {
		t.Errorf("FrameName(7) = %q", got)
	}
}
