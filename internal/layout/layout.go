package layout

// Serpentine describes how the LED strip snakes across the panel.
type Serpentine struct {
	XFlipEveryRow bool
}

// Layout maps panel pixel coordinates to LED strip indices.
type Layout struct {
	W, H    int
	Order   Serpentine
	PitchMM float64
}

// Index maps x,y (origin top-left) to the linear LED index.
func (l Layout) Index(x, y int) int {
	xx := x
	if l.Order.XFlipEveryRow && y%2 == 1 {
		xx = l.W - 1 - x
	}
	return y*l.W + xx
}

func (l Layout) Count() int { return l.W * l.H }
