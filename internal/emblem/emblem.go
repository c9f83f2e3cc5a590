// Package emblem implements a procedural layered "magic circle" glow field.
//
// The emblem is built from eight independently configured and animated
// layers, each a 2D distance-based primitive (ring, spoke array, rotated
// square outlines, dot ring, orbital cluster). A single scalar accumulator
// is threaded through the layers in a fixed order; the final value drives
// color and alpha. Sampling is pure: no state is retained between calls and
// a Config may be shared by any number of goroutines.
package emblem

import (
	"fmt"
	"math"
)

// Vec2 is a point in the emblem's local frame. The origin is the emblem
// center and a length of 1.0 corresponds to the nominal emblem radius.
type Vec2 struct{ X, Y float64 }

// RGB is a linear color triple, components >= 0.
type RGB struct{ R, G, B float64 }

// Fixed layer slots, in accumulation order.
const (
	LayerOuterRing = iota // ring + radiation spokes
	LayerHexagram
	LayerOuterDots
	LayerMiddleRing
	LayerInnerTriangle
	LayerInnerDots
	LayerInnerRadiation
	LayerCore

	NumLayers = 8
)

// LayerNames gives display names for the fixed layer slots.
var LayerNames = [NumLayers]string{
	"Outer Ring", "Hexagram", "Outer Dots", "Middle Ring",
	"Inner Tri", "Inner Dots", "Inner Rad", "Core",
}

// LayerConfig configures one of the eight layers.
type LayerConfig struct {
	Enabled   bool
	Intensity float64 // glow multiplier, >= 0
	Speed     float64 // rotation rate multiplier; sign is direction
	Geometry  Geometry
}

// GlobalParams holds the emblem-wide settings shared by all layers.
type GlobalParams struct {
	BreathingFrequency float64 // Hz of the global scale pulse
	BreathingAmplitude float64
	BreathingCenter    float64 // baseline scale, ~1.0, must stay positive

	RotationSpeed float64 // global multiplier on every layer's rotation

	Color           RGB
	GlowExponent    float64 // >= 1; sharpens the alpha falloff
	MasterIntensity float64 // >= 0; scales the output color
}

// Config is an immutable snapshot of the full emblem state. Build one with
// NewConfig; treat it as read-only afterwards (copy-on-write for changes).
type Config struct {
	Layers [NumLayers]LayerConfig
	Global GlobalParams
	Stage  StageState
}

// NewConfig validates the snapshot and returns it. All validation happens
// here; Sample never fails on a Config that passed.
func NewConfig(layers [NumLayers]LayerConfig, global GlobalParams, stage StageState) (*Config, error) {
	for i, l := range layers {
		if l.Geometry == nil {
			return nil, fmt.Errorf("layer %d (%s): no geometry", i+1, LayerNames[i])
		}
		if l.Intensity < 0 {
			return nil, fmt.Errorf("layer %d (%s): negative intensity %g", i+1, LayerNames[i], l.Intensity)
		}
		if err := l.Geometry.validate(); err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i+1, LayerNames[i], err)
		}
	}
	if err := global.validate(); err != nil {
		return nil, err
	}
	if err := stage.validate(); err != nil {
		return nil, err
	}
	return &Config{Layers: layers, Global: global, Stage: stage}, nil
}

func (g GlobalParams) validate() error {
	if g.BreathingCenter-math.Abs(g.BreathingAmplitude) <= 0 {
		return fmt.Errorf("breathing scale can reach zero (center %g, amplitude %g)", g.BreathingCenter, g.BreathingAmplitude)
	}
	if g.GlowExponent < 1 {
		return fmt.Errorf("glow exponent %g below 1", g.GlowExponent)
	}
	if g.MasterIntensity < 0 {
		return fmt.Errorf("negative master intensity %g", g.MasterIntensity)
	}
	if g.Color.R < 0 || g.Color.G < 0 || g.Color.B < 0 {
		return fmt.Errorf("negative color component (%g, %g, %g)", g.Color.R, g.Color.G, g.Color.B)
	}
	return nil
}

// evalEnv carries the per-sample time values primitives need.
type evalEnv struct {
	t          float64 // raw time, seconds
	rotT       float64 // t scaled by the global rotation speed
	breathFreq float64
}

// Sample evaluates the emblem at point p and time t. It returns the output
// color and an alpha in [0,1]. The caller composites (color, alpha) onto its
// scene, typically with additive blending.
func (c *Config) Sample(p Vec2, t float64) (RGB, float64) {
	scale := c.Global.BreathingCenter +
		c.Global.BreathingAmplitude*math.Sin(2*math.Pi*c.Global.BreathingFrequency*t)
	// Dividing the coordinate makes fixed-radius shapes appear to expand
	// as the scale grows.
	g := Vec2{p.X / scale, p.Y / scale}
	if ps := c.Stage.PositionScale(); ps != 1 {
		g = Vec2{g.X / ps, g.Y / ps}
	}

	ev := evalEnv{
		t:          t,
		rotT:       t * c.Global.RotationSpeed,
		breathFreq: c.Global.BreathingFrequency,
	}

	acc := 0.0
	for i := range c.Layers {
		l := &c.Layers[i]
		vis := c.Stage.Visibility(i)
		if !l.Enabled || vis <= 0 {
			continue
		}
		q := rotate(g, l.Speed*ev.rotT+l.Geometry.offset())
		acc = l.Geometry.glow(acc, q, l.Intensity*vis, ev)
	}

	alpha := math.Pow(acc, c.Global.GlowExponent)
	mi := c.Global.MasterIntensity
	return RGB{c.Global.Color.R * mi, c.Global.Color.G * mi, c.Global.Color.B * mi}, alpha
}
