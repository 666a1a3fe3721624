package game

import (
	"fmt"
	"math/rand"
	"time"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func statusLine(profile, state string, uptime time.Duration) string {
	return fmt.Sprintf("%s - %s - %s | Space: resume, P: profile, S: save, Esc/Q: quit",
		profile, state, formatDuration(uptime))
}

func snapshotName(t time.Time) string {
	return "wavegrid-" + t.Format("20060102-150405") + ".png"
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
