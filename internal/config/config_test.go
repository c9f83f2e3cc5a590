package config

import (
	"path/filepath"
	"testing"

	"github.com/cyberpunk042/glyphfield/internal/emblem"
)

func TestDefaultEmblemMatchesSampler(t *testing.T) {
	e := DefaultEmblem()
	cfg, err := e.ToEmblem()
	if err != nil {
		t.Fatalf("stock emblem section must validate: %v", err)
	}

	want := emblem.Default()
	if cfg.Global != want.Global {
		t.Fatalf("globals differ:\n got %+v\nwant %+v", cfg.Global, want.Global)
	}
	if cfg.Stage != want.Stage {
		t.Fatalf("stage differs: got %+v want %+v", cfg.Stage, want.Stage)
	}
	for i := range cfg.Layers {
		if cfg.Layers[i] != want.Layers[i] {
			t.Fatalf("layer %d differs:\n got %+v\nwant %+v", i+1, cfg.Layers[i], want.Layers[i])
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyph.yaml")

	c := Default()
	c.FPS = 30
	c.Driver = "term"
	c.Emblem.Stage.Mode = "scale"
	c.Emblem.Core.Orbitals = 9

	if err := Save(path, c); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.FPS != 30 || got.Driver != "term" {
		t.Fatalf("app fields lost: %+v", got)
	}
	if got.Emblem.Stage.Mode != "scale" || got.Emblem.Core.Orbitals != 9 {
		t.Fatalf("emblem fields lost: %+v", got.Emblem)
	}
	if _, err := got.Emblem.ToEmblem(); err != nil {
		t.Fatalf("round-tripped emblem must validate: %v", err)
	}
}

func TestToEmblemRejectsBadValues(t *testing.T) {
	e := DefaultEmblem()
	e.Stage.Mode = "spiral"
	if _, err := e.ToEmblem(); err == nil {
		t.Fatal("unknown mode must be rejected")
	}

	e = DefaultEmblem()
	e.MiddleRing.Inner = 0.7 // above outer
	if _, err := e.ToEmblem(); err == nil {
		t.Fatal("inverted ring radii must be rejected")
	}

	e = DefaultEmblem()
	e.Hexagram.Count = 1
	if _, err := e.ToEmblem(); err == nil {
		t.Fatal("degenerate polygon count must be rejected")
	}

	e = DefaultEmblem()
	e.Breathing.Amplitude = 2.0
	if _, err := e.ToEmblem(); err == nil {
		t.Fatal("breathing collapse must be rejected")
	}
}
