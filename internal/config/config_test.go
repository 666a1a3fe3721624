package config

import (
	"errors"
	"log/slog"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if p.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, p.Name)
		}
	}
	if _, err := Lookup("rainbow"); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("Lookup(rainbow) err = %v, want ErrUnknownProfile", err)
	}
}

func TestNext(t *testing.T) {
	if got := Next("grid"); got != "particles" {
		t.Errorf("Next(grid) = %q", got)
	}
	if got := Next("particles"); got != "grid" {
		t.Errorf("Next(particles) = %q", got)
	}
	if got := Next("nope"); got != Names()[0] {
		t.Errorf("Next(nope) = %q", got)
	}
}

func TestProfilesReturnFreshCopies(t *testing.T) {
	a := Grid()
	a.Terms[0].Weight = 99
	if Grid().Terms[0].Weight != 1 {
		t.Error("Grid() shares its term slice between calls")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, o Options)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, o Options) {
				if o.Profile != "grid" || o.Width != WindowWidth || o.Height != WindowHeight {
					t.Errorf("defaults = %+v", o)
				}
				if o.LogLevel != slog.LevelInfo {
					t.Errorf("log level = %v", o.LogLevel)
				}
			},
		},
		{
			name: "headless particles",
			args: []string{"-profile", "particles", "-headless", "-frames", "10", "-out", "x", "-log-level", "debug"},
			check: func(t *testing.T, o Options) {
				if !o.Headless || o.Frames != 10 || o.OutDir != "x" || o.Profile != "particles" {
					t.Errorf("options = %+v", o)
				}
				if o.LogLevel != slog.LevelDebug {
					t.Errorf("log level = %v", o.LogLevel)
				}
			},
		},
		{name: "unknown profile", args: []string{"-profile", "rainbow"}, wantErr: true},
		{name: "zero width", args: []string{"-width", "0"}, wantErr: true},
		{name: "huge dpr", args: []string{"-dpr", "12"}, wantErr: true},
		{name: "headless no frames", args: []string{"-headless", "-frames", "0"}, wantErr: true},
		{name: "bad log level", args: []string{"-log-level", "loud"}, wantErr: true},
		{name: "unknown flag", args: []string{"-nope"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := Parse("wavegrid", tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, o)
			}
		})
	}
}
