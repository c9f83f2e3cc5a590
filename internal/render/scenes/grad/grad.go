// Package grad renders a hue gradient across the panel, optionally animated.
// Params: "Speed" cycles the hue over time, "Axis" picks 0=X, 1=Y, 2=radial.
package grad

import (
	"math"

	"github.com/cyberpunk042/glyphfield/internal/render"
)

type Grad struct {
	name string
}

func New(name string) *Grad { return &Grad{name: name} }

func (g *Grad) Name() string { return g.name }

func (g *Grad) Presets() []string { return []string{"Horizontal", "Vertical", "Radial", "Rainbow"} }

func (g *Grad) ApplyPreset(name string, u *render.Uniforms) {
	if u == nil {
		return
	}
	if u.Params == nil {
		u.Params = map[string]float64{}
	}
	switch name {
	case "Horizontal":
		u.Params["Axis"] = 0
	case "Vertical":
		u.Params["Axis"] = 1
	case "Radial":
		u.Params["Axis"] = 2
	case "Rainbow":
		u.Params["Axis"] = 2
		u.Params["Speed"] = 0.1
	}
}

func (g *Grad) Render(dst []render.Color, dim render.Dimensions, t float64, u *render.Uniforms) {
	axis := 0.0
	speed := 0.0
	gb := 1.0
	if u != nil {
		if u.Params != nil {
			if v, ok := u.Params["Axis"]; ok {
				axis = v
			}
			if v, ok := u.Params["Speed"]; ok {
				speed = v
			}
		}
		if u.GlobalBrightness > 0 {
			gb = u.GlobalBrightness
		}
	}
	a := int(axis)
	cx := float64(dim.W-1) / 2
	cy := float64(dim.H-1) / 2
	rmax := math.Hypot(cx, cy)
	if rmax <= 0 {
		rmax = 1
	}

	for y := 0; y < dim.H; y++ {
		for x := 0; x < dim.W; x++ {
			var v float64
			switch a {
			case 0:
				v = float64(x) / float64(max(1, dim.W-1))
			case 1:
				v = float64(y) / float64(max(1, dim.H-1))
			default:
				v = math.Hypot(float64(x)-cx, float64(y)-cy) / rmax
			}
			phase := v*2*math.Pi + t*2*math.Pi*speed
			dst[y*dim.W+x] = render.Color{
				R: float32(gb * (0.5 + 0.5*math.Sin(phase))),
				G: float32(gb * (0.5 + 0.5*math.Sin(phase+2*math.Pi/3))),
				B: float32(gb * (0.5 + 0.5*math.Sin(phase+4*math.Pi/3))),
			}
		}
	}
}
