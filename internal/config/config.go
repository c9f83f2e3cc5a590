// Package config loads and saves the daemon's yaml configuration, including
// the full emblem parameter set. Building an emblem.Config from the file is
// the validation boundary: a file that loads but fails ToEmblem is rejected
// before anything renders.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cyberpunk042/glyphfield/internal/emblem"
)

type PowerCfg struct {
	BudgetMA float64 `yaml:"budget_ma"`
	WhiteCap float64 `yaml:"white_cap"`
}

type Frame struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2500000
}

type Config struct {
	Addr       string  `yaml:"addr"`
	Driver     string  `yaml:"driver"` // "nrz" | "term" | "sim"
	Brightness float64 `yaml:"brightness"`
	FPS        int     `yaml:"fps"`

	Frame         Frame `yaml:"frame"`
	XFlipEveryRow bool  `yaml:"x_flip_every_row"`

	Power  PowerCfg  `yaml:"power"`
	SPI    SPI       `yaml:"spi,omitempty"`
	Emblem EmblemCfg `yaml:"emblem"`
}

// ---- emblem schema ----

type RingPart struct {
	Inner     float64 `yaml:"inner"`
	Outer     float64 `yaml:"outer"`
	Thickness float64 `yaml:"thickness"`
	RotOffset float64 `yaml:"rot_offset"`
}

type SpokesPart struct {
	Inner     float64 `yaml:"inner"`
	Outer     float64 `yaml:"outer"`
	Count     int     `yaml:"count"`
	Thickness float64 `yaml:"thickness"`
}

type OuterRingLayer struct {
	Enabled   bool       `yaml:"enabled"`
	Intensity float64    `yaml:"intensity"`
	Speed     float64    `yaml:"speed"`
	Ring      RingPart   `yaml:"ring"`
	Spokes    SpokesPart `yaml:"spokes"`
}

type RingLayer struct {
	Enabled   bool    `yaml:"enabled"`
	Intensity float64 `yaml:"intensity"`
	Speed     float64 `yaml:"speed"`
	Inner     float64 `yaml:"inner"`
	Outer     float64 `yaml:"outer"`
	Thickness float64 `yaml:"thickness"`
	RotOffset float64 `yaml:"rot_offset"`
}

type SpokesLayer struct {
	Enabled   bool    `yaml:"enabled"`
	Intensity float64 `yaml:"intensity"`
	Speed     float64 `yaml:"speed"`
	Inner     float64 `yaml:"inner"`
	Outer     float64 `yaml:"outer"`
	Count     int     `yaml:"count"`
	Thickness float64 `yaml:"thickness"`
	RotOffset float64 `yaml:"rot_offset"`
}

type PolygonLayer struct {
	Enabled   bool    `yaml:"enabled"`
	Intensity float64 `yaml:"intensity"`
	Speed     float64 `yaml:"speed"`
	Count     int     `yaml:"count"`
	Size      float64 `yaml:"size"`
	Thickness float64 `yaml:"thickness"`
	RotOffset float64 `yaml:"rot_offset"`
	Snap      bool    `yaml:"snap"`
}

type DotRingLayer struct {
	Enabled       bool    `yaml:"enabled"`
	Intensity     float64 `yaml:"intensity"`
	Speed         float64 `yaml:"speed"`
	Count         int     `yaml:"count"`
	Orbit         float64 `yaml:"orbit"`
	RingInner     float64 `yaml:"ring_inner"`
	RingOuter     float64 `yaml:"ring_outer"`
	RingThickness float64 `yaml:"ring_thickness"`
	DotRadius     float64 `yaml:"dot_radius"`
	DotThickness  float64 `yaml:"dot_thickness"`
	RotOffset     float64 `yaml:"rot_offset"`
}

type CoreLayer struct {
	Enabled         bool    `yaml:"enabled"`
	Intensity       float64 `yaml:"intensity"`
	Speed           float64 `yaml:"speed"`
	BreathAmplitude float64 `yaml:"breath_amplitude"`
	BreathCenter    float64 `yaml:"breath_center"`
	Orbitals        int     `yaml:"orbitals"`
	StartRadius     float64 `yaml:"start_radius"`
	RadiusStep      float64 `yaml:"radius_step"`
	Distance        float64 `yaml:"distance"`
	Thickness       float64 `yaml:"thickness"`
	RotationSpeed   float64 `yaml:"rotation_speed"`
	CenterRadius    float64 `yaml:"center_radius"`
	CenterThickness float64 `yaml:"center_thickness"`
	RotOffset       float64 `yaml:"rot_offset"`
}

type BreathingCfg struct {
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
	Center    float64 `yaml:"center"`
}

type StageCfg struct {
	Value          float64 `yaml:"value"`
	Mode           string  `yaml:"mode"` // instant | fade | scale | fade+scale
	FromCenter     bool    `yaml:"from_center"`
	Speed          float64 `yaml:"speed"` // seconds per stage
	AnimateOnSpawn bool    `yaml:"animate_on_spawn"`
}

type EmblemCfg struct {
	Color           [3]float64   `yaml:"color,flow"`
	GlowExponent    float64      `yaml:"glow_exponent"`
	MasterIntensity float64      `yaml:"master_intensity"`
	RotationSpeed   float64      `yaml:"rotation_speed"`
	Breathing       BreathingCfg `yaml:"breathing"`
	Stage           StageCfg     `yaml:"stage"`

	OuterRing      OuterRingLayer `yaml:"outer_ring"`
	Hexagram       PolygonLayer   `yaml:"hexagram"`
	OuterDots      DotRingLayer   `yaml:"outer_dots"`
	MiddleRing     RingLayer      `yaml:"middle_ring"`
	InnerTriangle  PolygonLayer   `yaml:"inner_triangle"`
	InnerDots      DotRingLayer   `yaml:"inner_dots"`
	InnerRadiation SpokesLayer    `yaml:"inner_radiation"`
	Core           CoreLayer      `yaml:"core"`
}

// ToEmblem validates the section and builds the immutable sampler config.
func (e *EmblemCfg) ToEmblem() (*emblem.Config, error) {
	mode, err := emblem.ParseTransitionMode(e.Stage.Mode)
	if err != nil {
		return nil, err
	}

	var layers [emblem.NumLayers]emblem.LayerConfig
	layers[emblem.LayerOuterRing] = emblem.LayerConfig{
		Enabled: e.OuterRing.Enabled, Intensity: e.OuterRing.Intensity, Speed: e.OuterRing.Speed,
		Geometry: emblem.CompositeRingSpokes{
			Ring: emblem.RingGeometry{
				Inner: e.OuterRing.Ring.Inner, Outer: e.OuterRing.Ring.Outer,
				Thickness: e.OuterRing.Ring.Thickness, RotationOffset: e.OuterRing.Ring.RotOffset,
			},
			Spokes: emblem.SpokesGeometry{
				Inner: e.OuterRing.Spokes.Inner, Outer: e.OuterRing.Spokes.Outer,
				Count: e.OuterRing.Spokes.Count, Thickness: e.OuterRing.Spokes.Thickness,
			},
		},
	}
	layers[emblem.LayerHexagram] = polygonLayer(e.Hexagram)
	layers[emblem.LayerOuterDots] = dotRingLayer(e.OuterDots)
	layers[emblem.LayerMiddleRing] = emblem.LayerConfig{
		Enabled: e.MiddleRing.Enabled, Intensity: e.MiddleRing.Intensity, Speed: e.MiddleRing.Speed,
		Geometry: emblem.RingGeometry{
			Inner: e.MiddleRing.Inner, Outer: e.MiddleRing.Outer,
			Thickness: e.MiddleRing.Thickness, RotationOffset: e.MiddleRing.RotOffset,
		},
	}
	layers[emblem.LayerInnerTriangle] = polygonLayer(e.InnerTriangle)
	layers[emblem.LayerInnerDots] = dotRingLayer(e.InnerDots)
	layers[emblem.LayerInnerRadiation] = emblem.LayerConfig{
		Enabled: e.InnerRadiation.Enabled, Intensity: e.InnerRadiation.Intensity, Speed: e.InnerRadiation.Speed,
		Geometry: emblem.SpokesGeometry{
			Inner: e.InnerRadiation.Inner, Outer: e.InnerRadiation.Outer,
			Count: e.InnerRadiation.Count, Thickness: e.InnerRadiation.Thickness,
			RotationOffset: e.InnerRadiation.RotOffset,
		},
	}
	layers[emblem.LayerCore] = emblem.LayerConfig{
		Enabled: e.Core.Enabled, Intensity: e.Core.Intensity, Speed: e.Core.Speed,
		Geometry: emblem.OrbitalClusterGeometry{
			BreathAmplitude: e.Core.BreathAmplitude, BreathCenter: e.Core.BreathCenter,
			OrbitalCount: e.Core.Orbitals, StartRadius: e.Core.StartRadius,
			RadiusStep: e.Core.RadiusStep, OrbitalDistance: e.Core.Distance,
			OrbitalThickness: e.Core.Thickness, OrbitalRotationSpeed: e.Core.RotationSpeed,
			CenterRadius: e.Core.CenterRadius, CenterThickness: e.Core.CenterThickness,
			RotationOffset: e.Core.RotOffset,
		},
	}

	globals := emblem.GlobalParams{
		BreathingFrequency: e.Breathing.Frequency,
		BreathingAmplitude: e.Breathing.Amplitude,
		BreathingCenter:    e.Breathing.Center,
		RotationSpeed:      e.RotationSpeed,
		Color:              emblem.RGB{R: e.Color[0], G: e.Color[1], B: e.Color[2]},
		GlowExponent:       e.GlowExponent,
		MasterIntensity:    e.MasterIntensity,
	}
	stage := emblem.StageState{Stage: e.Stage.Value, Mode: mode, FromCenter: e.Stage.FromCenter}

	cfg, err := emblem.NewConfig(layers, globals, stage)
	if err != nil {
		return nil, fmt.Errorf("emblem config: %w", err)
	}
	return cfg, nil
}

func polygonLayer(p PolygonLayer) emblem.LayerConfig {
	return emblem.LayerConfig{
		Enabled: p.Enabled, Intensity: p.Intensity, Speed: p.Speed,
		Geometry: emblem.PolygonOutlineGeometry{
			Count: p.Count, Size: p.Size, Thickness: p.Thickness,
			RotationOffset: p.RotOffset, SnapRotation: p.Snap,
		},
	}
}

func dotRingLayer(d DotRingLayer) emblem.LayerConfig {
	return emblem.LayerConfig{
		Enabled: d.Enabled, Intensity: d.Intensity, Speed: d.Speed,
		Geometry: emblem.DotRingGeometry{
			Count: d.Count, OrbitRadius: d.Orbit,
			RingInner: d.RingInner, RingOuter: d.RingOuter, RingThickness: d.RingThickness,
			DotRadius: d.DotRadius, DotThickness: d.DotThickness,
			RotationOffset: d.RotOffset,
		},
	}
}

// Default returns the stock daemon configuration.
func Default() *Config {
	return &Config{
		Addr:       ":8089",
		Driver:     "sim",
		Brightness: 1.0,
		FPS:        60,
		Frame:      Frame{W: 64, H: 64},
		Power:      PowerCfg{BudgetMA: 0, WhiteCap: 3.0},
		SPI:        SPI{Dev: "", SpeedHz: 2500000},
		Emblem:     DefaultEmblem(),
	}
}

// DefaultEmblem is the stock emblem section, matching emblem.Default().
func DefaultEmblem() EmblemCfg {
	return EmblemCfg{
		Color:           [3]float64{1.0, 0.95, 0.8},
		GlowExponent:    2.5,
		MasterIntensity: 1.0,
		RotationSpeed:   1.0,
		Breathing:       BreathingCfg{Frequency: 1.0, Amplitude: 0.02, Center: 1.0},
		Stage:           StageCfg{Value: 8, Mode: "fade", FromCenter: true, Speed: 0.5, AnimateOnSpawn: true},
		OuterRing: OuterRingLayer{
			Enabled: true, Intensity: 1, Speed: 1,
			Ring:   RingPart{Inner: 0.85, Outer: 0.9, Thickness: 0.006},
			Spokes: SpokesPart{Inner: 0.87, Outer: 0.88, Count: 36, Thickness: 0.0008},
		},
		Hexagram: PolygonLayer{
			Enabled: true, Intensity: 1, Speed: 1,
			Count: 6, Size: 0.601, Thickness: 0.0015, Snap: true,
		},
		OuterDots: DotRingLayer{
			Enabled: true, Intensity: 1, Speed: 1,
			Count: 12, Orbit: 0.875,
			RingInner: 0.001, RingOuter: 0.05, RingThickness: 0.004,
			DotRadius: 0.001, DotThickness: 0.008, RotOffset: 0.262,
		},
		MiddleRing: RingLayer{
			Enabled: true, Intensity: 1, Speed: 0,
			Inner: 0.5, Outer: 0.55, Thickness: 0.002,
		},
		InnerTriangle: PolygonLayer{
			Enabled: true, Intensity: 1, Speed: -1,
			Count: 3, Size: 0.36, Thickness: 0.0015, Snap: true,
		},
		InnerDots: DotRingLayer{
			Enabled: true, Intensity: 1, Speed: -1,
			Count: 12, Orbit: 0.53,
			RingInner: 0.001, RingOuter: 0.035, RingThickness: 0.004,
			DotRadius: 0.001, DotThickness: 0.001, RotOffset: 0.262,
		},
		InnerRadiation: SpokesLayer{
			Enabled: true, Intensity: 1, Speed: 1,
			Inner: 0.25, Outer: 0.3, Count: 12, Thickness: 0.005,
		},
		Core: CoreLayer{
			Enabled: true, Intensity: 1, Speed: -1,
			BreathAmplitude: 0.04, BreathCenter: 1.1,
			Orbitals: 6, StartRadius: 0.13, RadiusStep: 0.01,
			Distance: 0.1, Thickness: 0.002, RotationSpeed: 1.0,
			CenterRadius: 0.04, CenterThickness: 0.004,
		},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
