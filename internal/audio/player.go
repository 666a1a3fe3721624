package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/wavegrid/internal/config"
)

// ErrUnsupportedFormat is returned for files that are not wav, mp3 or flac.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decode opens path and picks a decoder from its extension.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// Player loops one soundtrack on the speaker through a Tap.
type Player struct {
	streamer beep.StreamSeekCloser
	tap      *Tap
	ctrl     *beep.Ctrl
	log      *slog.Logger
}

// Play decodes path and starts looping it.
func Play(path string, log *slog.Logger) (*Player, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	streamer, format, err := Decode(path)
	if err != nil {
		return nil, err
	}

	// streamer -> loop -> tap -> ctrl
	t := NewTap(beep.Loop(-1, streamer), config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: t}

	bufferSize := format.SampleRate.N(time.Second / 20)
	if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
		_ = streamer.Close()
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(ctrl)
	log.Info("audio playing", "path", path, "rate", int(format.SampleRate))

	return &Player{streamer: streamer, tap: t, ctrl: ctrl, log: log}, nil
}

// Level is the current compressed loudness in [0,1].
func (p *Player) Level() float64 {
	return p.tap.Level(config.LevelWindow)
}

// SetPaused pauses or resumes playback.
func (p *Player) SetPaused(paused bool) {
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Close stops playback and releases the decoder.
func (p *Player) Close() error {
	speaker.Clear()
	if err := p.streamer.Close(); err != nil {
		return fmt.Errorf("close audio: %w", err)
	}
	p.log.Debug("audio closed")
	return nil
}
