package led

import (
	"fmt"
	"math"

	"github.com/cyberpunk042/glyphfield/internal/layout"
	"github.com/cyberpunk042/glyphfield/internal/render"
)

// FrameSink adapts the engine's linear []Color frames to a byte Driver,
// applying the serpentine layout and 8-bit quantization.
type FrameSink struct {
	Layout layout.Layout
	Drv    Driver
	buf    []byte
}

func NewFrameSink(l layout.Layout, d Driver) *FrameSink {
	return &FrameSink{Layout: l, Drv: d, buf: make([]byte, l.Count()*3)}
}

func (s *FrameSink) Write(frame []render.Color) error {
	if len(frame) != s.Layout.Count() {
		return fmt.Errorf("frame length %d does not match layout count %d", len(frame), s.Layout.Count())
	}
	for y := 0; y < s.Layout.H; y++ {
		for x := 0; x < s.Layout.W; x++ {
			c := frame[y*s.Layout.W+x]
			i := s.Layout.Index(x, y) * 3
			s.buf[i+0] = quantize(c.R)
			s.buf[i+1] = quantize(c.G)
			s.buf[i+2] = quantize(c.B)
		}
	}
	return s.Drv.Write(s.buf)
}

// Bytes returns the last quantized frame; valid until the next Write.
func (s *FrameSink) Bytes() []byte { return s.buf }

func quantize(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(math.Round(float64(v) * 255))
}
