// Package circle renders the layered emblem onto the 2D panel.
package circle

import (
	"fmt"
	"math"

	"github.com/cyberpunk042/glyphfield/internal/emblem"
	"github.com/cyberpunk042/glyphfield/internal/render"
)

// Scene wraps an emblem.Config as a render.Renderer. The base config comes
// from a preset or the config file; uniforms override the live parameters
// (stage, intensities, breathing, per-layer toggles) each frame. The scene
// is owned by the render loop; swap the base only from that goroutine.
type Scene struct {
	base *emblem.Config
}

func New() *Scene { return &Scene{base: emblem.Default()} }

func (s *Scene) Name() string { return "circle" }

func (s *Scene) Presets() []string {
	return []string{"warm-gold", "azure-sigil", "ember-rite", "void-pulse"}
}

// Base returns the current base config.
func (s *Scene) Base() *emblem.Config { return s.base }

// SetBase replaces the base config, e.g. with one built from the config file.
func (s *Scene) SetBase(cfg *emblem.Config) {
	if cfg != nil {
		s.base = cfg
	}
}

func (s *Scene) ApplyPreset(name string, u *render.Uniforms) {
	var cfg *emblem.Config
	switch name {
	case "", "warm-gold":
		cfg = emblem.Default()
	case "azure-sigil":
		c := *emblem.Default()
		c.Global.Color = emblem.RGB{R: 0.55, G: 0.75, B: 1.0}
		c.Global.RotationSpeed = 1.4
		c.Global.BreathingAmplitude = 0.03
		c.Stage.FromCenter = false
		cfg = &c
	case "ember-rite":
		c := *emblem.Default()
		c.Global.Color = emblem.RGB{R: 1.0, G: 0.45, B: 0.25}
		c.Global.RotationSpeed = -0.8
		c.Global.GlowExponent = 3.0
		c.Global.MasterIntensity = 1.2
		c.Stage.Mode = emblem.TransitionFadeScale
		cfg = &c
	case "void-pulse":
		c := *emblem.Default()
		c.Global.Color = emblem.RGB{R: 0.7, G: 0.5, B: 1.0}
		c.Global.BreathingFrequency = 0.5
		c.Global.BreathingAmplitude = 0.06
		c.Stage.Mode = emblem.TransitionInstant
		c.Layers[emblem.LayerHexagram].Enabled = false
		c.Layers[emblem.LayerCore].Intensity = 1.5
		cfg = &c
	default:
		return
	}
	s.base = cfg
	s.push(u)
}

// PushUniforms mirrors the base config into u, so a base loaded from the
// config file shows up on the control surface the same way a preset does.
func (s *Scene) PushUniforms(u *render.Uniforms) { s.push(u) }

// push mirrors the base config into the uniforms so the control surface
// reads back what the preset set.
func (s *Scene) push(u *render.Uniforms) {
	if u == nil {
		return
	}
	if u.Params == nil {
		u.Params = map[string]float64{}
	}
	if u.Bools == nil {
		u.Bools = map[string]bool{}
	}
	g := s.base.Global
	u.Params["MasterIntensity"] = g.MasterIntensity
	u.Params["GlowExponent"] = g.GlowExponent
	u.Params["RotationSpeed"] = g.RotationSpeed
	u.Params["BreathingFrequency"] = g.BreathingFrequency
	u.Params["BreathingAmplitude"] = g.BreathingAmplitude
	u.Params["BreathingCenter"] = g.BreathingCenter
	u.Params["Stage"] = s.base.Stage.Stage
	u.Params["TransitionMode"] = float64(s.base.Stage.Mode)
	u.Bools["FromCenter"] = s.base.Stage.FromCenter
	for i := range s.base.Layers {
		u.Bools[layerKey(i, "Enabled")] = s.base.Layers[i].Enabled
		u.Params[layerKey(i, "Intensity")] = s.base.Layers[i].Intensity
		u.Params[layerKey(i, "Speed")] = s.base.Layers[i].Speed
	}
}

func (s *Scene) Render(dst []render.Color, dim render.Dimensions, t float64, u *render.Uniforms) {
	cfg := s.derive(u)

	gb := 1.0
	if u != nil && u.GlobalBrightness > 0 {
		gb = u.GlobalBrightness
	}

	// Unit emblem radius maps to half the short edge.
	r := float64(dim.W) / 2
	if dim.H < dim.W {
		r = float64(dim.H) / 2
	}
	cx := float64(dim.W) / 2
	cy := float64(dim.H) / 2

	for y := 0; y < dim.H; y++ {
		for x := 0; x < dim.W; x++ {
			p := emblem.Vec2{
				X: (float64(x) + 0.5 - cx) / r,
				Y: (float64(y) + 0.5 - cy) / r,
			}
			col, a := cfg.Sample(p, t)
			k := a * gb
			dst[y*dim.W+x] = render.Color{
				R: float32(col.R * k),
				G: float32(col.G * k),
				B: float32(col.B * k),
			}
		}
	}
}

// derive copies the base config and folds in the live uniform overrides,
// clamping anything the control surface could have pushed out of range.
func (s *Scene) derive(u *render.Uniforms) emblem.Config {
	d := *s.base

	g := &d.Global
	g.MasterIntensity = math.Max(0, pget(u, "MasterIntensity", g.MasterIntensity))
	g.GlowExponent = math.Max(1, pget(u, "GlowExponent", g.GlowExponent))
	g.RotationSpeed = pget(u, "RotationSpeed", g.RotationSpeed)
	g.BreathingFrequency = pget(u, "BreathingFrequency", g.BreathingFrequency)
	g.BreathingCenter = math.Max(0.05, pget(u, "BreathingCenter", g.BreathingCenter))
	amp := pget(u, "BreathingAmplitude", g.BreathingAmplitude)
	if limit := 0.95 * g.BreathingCenter; math.Abs(amp) > limit {
		amp = math.Copysign(limit, amp)
	}
	g.BreathingAmplitude = amp

	st := &d.Stage
	st.Stage = math.Max(0, math.Min(emblem.NumLayers, pget(u, "Stage", st.Stage)))
	if m := int(pget(u, "TransitionMode", float64(st.Mode))); m >= 0 && m <= int(emblem.TransitionFadeScale) {
		st.Mode = emblem.TransitionMode(m)
	}
	st.FromCenter = bget(u, "FromCenter", st.FromCenter)

	for i := range d.Layers {
		l := &d.Layers[i]
		l.Enabled = bget(u, layerKey(i, "Enabled"), l.Enabled)
		l.Intensity = math.Max(0, pget(u, layerKey(i, "Intensity"), l.Intensity))
		l.Speed = pget(u, layerKey(i, "Speed"), l.Speed)
	}
	return d
}

func layerKey(i int, field string) string { return fmt.Sprintf("Layer%d%s", i+1, field) }

func pget(u *render.Uniforms, key string, def float64) float64 {
	if u != nil && u.Params != nil {
		if v, ok := u.Params[key]; ok {
			return v
		}
	}
	return def
}

func bget(u *render.Uniforms, key string, def bool) bool {
	if u != nil && u.Bools != nil {
		if v, ok := u.Bools[key]; ok {
			return v
		}
	}
	return def
}
