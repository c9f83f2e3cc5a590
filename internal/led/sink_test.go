package led

import (
	"testing"

	"github.com/cyberpunk042/glyphfield/internal/layout"
	"github.com/cyberpunk042/glyphfield/internal/render"
)

func TestFrameSinkSerpentine(t *testing.T) {
	l := layout.Layout{W: 2, H: 2, Order: layout.Serpentine{XFlipEveryRow: true}}
	sim := NewSim(l.Count())
	sink := NewFrameSink(l, sim)

	frame := []render.Color{
		{R: 1}, {G: 1}, // row 0: red, green
		{B: 1}, {R: 1, G: 1, B: 1}, // row 1: blue, white
	}
	if err := sink.Write(frame); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := sim.Last()
	// strip order: (0,0) (1,0) then row 1 reversed: (1,1) (0,1)
	want := []byte{
		255, 0, 0,
		0, 255, 0,
		255, 255, 255,
		0, 0, 255,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %d want %d (%v)", i, got[i], want[i], got)
		}
	}
}

func TestFrameSinkLengthCheck(t *testing.T) {
	l := layout.Layout{W: 4, H: 4}
	sink := NewFrameSink(l, NewSim(l.Count()))
	if err := sink.Write(make([]render.Color, 3)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestQuantize(t *testing.T) {
	cases := []struct {
		in   float32
		want byte
	}{
		{-0.5, 0}, {0, 0}, {0.5, 128}, {1, 255}, {2, 255},
	}
	for _, c := range cases {
		if got := quantize(c.in); got != c.want {
			t.Fatalf("quantize(%g) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestSimCountsFrames(t *testing.T) {
	s := NewSim(4)
	if err := s.Write(make([]byte, 12)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write(make([]byte, 5)); err == nil {
		t.Fatal("expected length error")
	}
	if s.Frames != 1 {
		t.Fatalf("expected 1 frame, got %d", s.Frames)
	}
}
