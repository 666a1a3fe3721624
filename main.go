package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/wavegrid/internal/config"
	"github.com/iburimskiy/wavegrid/internal/engine"
	"github.com/iburimskiy/wavegrid/internal/export"
	"github.com/iburimskiy/wavegrid/internal/game"
)

func main() {
	opts, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: opts.LogLevel}))
	gg.SetLogger(log.With("component", "gg"))

	if err := run(opts, log); err != nil {
		log.Error("wavegrid failed", "err", err)
		os.Exit(1)
	}
}

func run(opts config.Options, log *slog.Logger) error {
	profile, err := config.Lookup(opts.Profile)
	if err != nil {
		return err
	}

	if opts.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		dpr := opts.DPR
		if dpr <= 0 {
			dpr = 1
		}
		e := engine.New(profile,
			engine.WithLogger(log),
			engine.WithRand(rand.New(rand.NewSource(opts.Seed))),
		)
		return export.Run(ctx, e, export.Job{
			Width:  float64(opts.Width),
			Height: float64(opts.Height),
			DPR:    dpr,
			Frames: opts.Frames,
			Dir:    opts.OutDir,
		}, log)
	}

	g, err := game.New(game.Options{
		Profile: profile,
		DPR:     opts.DPR,
		Audio:   opts.Audio,
		Seed:    opts.Seed,
		Log:     log,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle("wavegrid - Space: pause, P: profile, S: save frame, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(opts.Fullscreen)
	ebiten.SetTPS(config.TargetFPS)

	runErr := ebiten.RunGame(g)
	if errors.Is(runErr, ebiten.Termination) {
		runErr = nil
	}
	return errors.Join(runErr, g.Close())
}
