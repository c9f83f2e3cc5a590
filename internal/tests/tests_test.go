package tests

import (
	"testing"

	"github.com/cyberpunk042/glyphfield/internal/layout"
)

func TestIndexSweepWalksWholeStrip(t *testing.T) {
	l := layout.Layout{W: 3, H: 2}
	r := NewRunner(Plan{Kind: IndexSweep})
	rgb := make([]byte, l.Count()*3)

	for i := 0; i < l.Count(); i++ {
		if !r.Step(l, rgb) {
			t.Fatalf("sweep ended early at step %d", i)
		}
		lit := 0
		for px := 0; px < l.Count(); px++ {
			if rgb[px*3] == 255 {
				if px != i {
					t.Fatalf("step %d lit pixel %d", i, px)
				}
				lit++
			}
		}
		if lit != 1 {
			t.Fatalf("step %d lit %d pixels", i, lit)
		}
	}
	if r.Step(l, rgb) {
		t.Fatal("sweep should finish after the last pixel")
	}
}

func TestRGBChannelsThreePhases(t *testing.T) {
	l := layout.Layout{W: 2, H: 2}
	r := NewRunner(Plan{Kind: RGBTest})
	rgb := make([]byte, l.Count()*3)

	for phase := 0; phase < 3; phase++ {
		if !r.Step(l, rgb) {
			t.Fatalf("ended early at phase %d", phase)
		}
		for px := 0; px < l.Count(); px++ {
			for ch := 0; ch < 3; ch++ {
				want := byte(0)
				if ch == phase {
					want = 255
				}
				if rgb[px*3+ch] != want {
					t.Fatalf("phase %d pixel %d channel %d = %d", phase, px, ch, rgb[px*3+ch])
				}
			}
		}
	}
	if r.Step(l, rgb) {
		t.Fatal("rgb test should finish after three phases")
	}
}

func TestRowSweepFollowsSerpentine(t *testing.T) {
	l := layout.Layout{W: 3, H: 2, Order: layout.Serpentine{XFlipEveryRow: true}}
	r := NewRunner(Plan{Kind: RowSweep})
	rgb := make([]byte, l.Count()*3)

	if !r.Step(l, rgb) {
		t.Fatal("row 0 missing")
	}
	for x := 0; x < l.W; x++ {
		i := l.Index(x, 0) * 3
		if rgb[i+1] != 255 || rgb[i+2] != 255 {
			t.Fatalf("row 0 pixel %d not lit", x)
		}
	}
	r.Step(l, rgb)
	if r.Step(l, rgb) {
		t.Fatal("row sweep should finish after the last row")
	}
}
