package game

import (
	"strings"
	"testing"
	"time"
)

func TestLayoutSourceForwardsChanges(t *testing.T) {
	s := &layoutSource{}
	var got [][2]float64
	cancel, err := s.Observe(func(w, h float64) { got = append(got, [2]float64{w, h}) })
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}

	s.layout(800, 600)
	s.layout(800, 600)
	s.layout(1024, 768)
	if len(got) != 2 {
		t.Fatalf("forwarded %d sizes, want 2: %v", len(got), got)
	}
	if got[1] != [2]float64{1024, 768} {
		t.Errorf("last size = %v, want [1024 768]", got[1])
	}

	cancel()
	s.layout(10, 10)
	if len(got) != 2 {
		t.Errorf("size forwarded after cancel: %v", got)
	}
}

func TestLayoutSourceSingleObserver(t *testing.T) {
	s := &layoutSource{}
	if _, err := s.Observe(func(float64, float64) {}); err != nil {
		t.Fatalf("first Observe: %v", err)
	}
	if _, err := s.Observe(func(float64, float64) {}); err == nil {
		t.Error("second Observe succeeded")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{75 * time.Minute, "75:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSnapshotName(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	if got, want := snapshotName(ts), "wavegrid-20260304-050607.png"; got != want {
		t.Errorf("snapshotName = %q, want %q", got, want)
	}
}

func TestStatusLine(t *testing.T) {
	s := statusLine("grid", "paused", 90*time.Second)
	if !strings.HasPrefix(s, "grid - paused - 01:30") {
		t.Errorf("statusLine = %q", s)
	}
}
