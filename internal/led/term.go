package led

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/extra/devices/screen"
)

// Term paints the panel's center row as ANSI color blocks on stdout. It is
// a quick smoke check for machines without an SPI port; frames must be in
// row-major order (serpentine flipping off).
type Term struct {
	dev  *screen.Dev
	w, h int
	img  *image.NRGBA
}

func NewTerm(w, h int) *Term {
	return &Term{
		dev: screen.New(w),
		w:   w,
		h:   h,
		img: image.NewNRGBA(image.Rect(0, 0, w, 1)),
	}
}

func (t *Term) Write(rgb []byte) error {
	if len(rgb) != t.w*t.h*3 {
		return fmt.Errorf("rgb length %d does not match %dx%d", len(rgb), t.w, t.h)
	}
	row := t.h / 2
	for x := 0; x < t.w; x++ {
		i := (row*t.w + x) * 3
		t.img.SetNRGBA(x, 0, color.NRGBA{R: rgb[i], G: rgb[i+1], B: rgb[i+2], A: 255})
	}
	return t.dev.Draw(t.dev.Bounds(), t.img, image.Point{})
}

func (t *Term) Close() error { return t.dev.Halt() }
