package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

// Options are the host settings taken from the command line.
type Options struct {
	Profile    string
	Width      int
	Height     int
	DPR        float64
	Audio      string
	Headless   bool
	Frames     int
	OutDir     string
	Seed       int64
	LogLevel   slog.Level
	Fullscreen bool
}

// Parse reads Options from args (without the program name).
func Parse(name string, args []string) (Options, error) {
	var (
		o        Options
		logLevel string
	)
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&o.Profile, "profile", "grid", "render profile ("+strings.Join(Names(), ", ")+")")
	fs.IntVar(&o.Width, "width", WindowWidth, "logical surface width")
	fs.IntVar(&o.Height, "height", WindowHeight, "logical surface height")
	fs.Float64Var(&o.DPR, "dpr", 0, "device pixel ratio override (0 = ask the monitor)")
	fs.StringVar(&o.Audio, "audio", "", "optional wav/mp3/flac file driving the wave amplitude")
	fs.BoolVar(&o.Headless, "headless", false, "render frames to PNG files instead of opening a window")
	fs.IntVar(&o.Frames, "frames", 120, "frames to render in headless mode")
	fs.StringVar(&o.OutDir, "out", "frames", "output directory for headless frames")
	fs.Int64Var(&o.Seed, "seed", 1, "particle layout seed")
	fs.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.BoolVar(&o.Fullscreen, "fullscreen", false, "start fullscreen")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if err := o.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Options{}, fmt.Errorf("log-level: %w", err)
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Validate rejects option combinations the host cannot run with.
func (o Options) Validate() error {
	if _, err := Lookup(o.Profile); err != nil {
		return err
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("surface size must be positive (got %dx%d)", o.Width, o.Height)
	}
	if o.DPR < 0 || o.DPR > 8 {
		return fmt.Errorf("dpr out of range 0-8 (got %.2f)", o.DPR)
	}
	if o.Headless {
		if o.Frames < 1 {
			return fmt.Errorf("frames must be at least 1 (got %d)", o.Frames)
		}
		if o.OutDir == "" {
			return errors.New("headless mode needs an output directory")
		}
	}
	return nil
}
