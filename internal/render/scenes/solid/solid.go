// Package solid fills the panel with one color. Handy as a show backdrop
// and for exercising the crossfade path.
package solid

import (
	"math"

	"github.com/cyberpunk042/glyphfield/internal/render"
)

type Solid struct {
	name string
	c    render.Color
}

func New(name string, c render.Color) *Solid { return &Solid{name: name, c: c} }

func (s *Solid) Name() string { return s.name }

func (s *Solid) Presets() []string { return []string{"Red", "Green", "Blue", "White", "Black"} }

func (s *Solid) ApplyPreset(name string, u *render.Uniforms) {
	switch name {
	case "Red":
		s.c = render.Color{R: 1}
	case "Green":
		s.c = render.Color{G: 1}
	case "Blue":
		s.c = render.Color{B: 1}
	case "White":
		s.c = render.Color{R: 1, G: 1, B: 1}
	case "Black":
		s.c = render.Color{}
	}
}

func (s *Solid) Render(dst []render.Color, _ render.Dimensions, t float64, u *render.Uniforms) {
	// optional pulse for testing the SetParam path
	scale := float32(1.0)
	if u != nil && u.Params != nil {
		if hz, ok := u.Params["PulseHz"]; ok && hz > 0 {
			scale = float32(0.5 + 0.5*math.Sin(2*math.Pi*hz*t))
		}
	}
	if u != nil && u.GlobalBrightness > 0 {
		scale *= float32(u.GlobalBrightness)
	}
	c := render.Color{R: s.c.R * scale, G: s.c.G * scale, B: s.c.B * scale}
	for i := range dst {
		dst[i] = c
	}
}
