package emblem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soloLayer(t *testing.T, slot int, l LayerConfig) *Config {
	t.Helper()
	layers := DefaultLayers()
	for i := range layers {
		layers[i].Enabled = false
	}
	layers[slot] = l
	cfg, err := NewConfig(layers, DefaultGlobals(), StageState{Stage: NumLayers, Mode: TransitionFade, FromCenter: true})
	require.NoError(t, err)
	return cfg
}

var gridPoints = []Vec2{
	{0, 0}, {0.1, 0}, {0, 0.3}, {-0.45, 0.2}, {0.6, -0.6},
	{0.875, 0}, {-0.9, 0.05}, {1.2, 1.2}, {-2, 3}, {0.001, -0.001},
}

func TestSampleBounded(t *testing.T) {
	cfg := Default()
	for _, p := range gridPoints {
		for _, tm := range []float64{0, 0.25, 1.7, 42.0, -3.5} {
			col, a := cfg.Sample(p, tm)
			assert.False(t, math.IsNaN(a), "alpha NaN at %v t=%g", p, tm)
			assert.GreaterOrEqual(t, a, 0.0)
			assert.LessOrEqual(t, a, 1.0)
			assert.False(t, math.IsNaN(col.R) || math.IsNaN(col.G) || math.IsNaN(col.B))
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	cfg := Default()
	for _, p := range gridPoints {
		_, a1 := cfg.Sample(p, 1.25)
		_, a2 := cfg.Sample(p, 1.25)
		assert.Equal(t, a1, a2)
	}
}

// Enabling one more layer may never darken any point.
func TestLayerMonotonicity(t *testing.T) {
	base := DefaultLayers()
	for i := range base {
		base[i].Enabled = i < 2
	}
	for extra := 2; extra < NumLayers; extra++ {
		withExtra := base
		withExtra[extra].Enabled = true

		cfgBase, err := NewConfig(base, DefaultGlobals(), StageState{Stage: NumLayers})
		require.NoError(t, err)
		cfgMore, err := NewConfig(withExtra, DefaultGlobals(), StageState{Stage: NumLayers})
		require.NoError(t, err)

		for _, p := range gridPoints {
			for _, tm := range []float64{0, 0.4, 2.9} {
				_, a1 := cfgBase.Sample(p, tm)
				_, a2 := cfgMore.Sample(p, tm)
				assert.GreaterOrEqual(t, a2, a1, "layer %d darkened %v at t=%g", extra+1, p, tm)
			}
		}
	}
}

// A solo layer must match evaluating its geometry directly through the
// breathing transform.
func TestLayerIndependence(t *testing.T) {
	geom := SpokesGeometry{Inner: 0.25, Outer: 0.3, Count: 12, Thickness: 0.005}
	cfg := soloLayer(t, LayerInnerRadiation, LayerConfig{Enabled: true, Intensity: 1, Speed: 0.7, Geometry: geom})

	for _, p := range gridPoints {
		tm := 1.3
		_, got := cfg.Sample(p, tm)

		g := cfg.Global
		scale := g.BreathingCenter + g.BreathingAmplitude*math.Sin(2*math.Pi*g.BreathingFrequency*tm)
		q := rotate(Vec2{p.X / scale, p.Y / scale}, 0.7*tm*g.RotationSpeed)
		acc := geom.glow(0, q, 1, evalEnv{t: tm, rotT: tm * g.RotationSpeed, breathFreq: g.BreathingFrequency})
		want := math.Pow(acc, g.GlowExponent)

		assert.InDelta(t, want, got, 1e-12)
	}
}

func TestBreathingPeriod(t *testing.T) {
	layers := DefaultLayers()
	for i := range layers {
		layers[i].Speed = 0
	}
	core := layers[LayerCore].Geometry.(OrbitalClusterGeometry)
	core.OrbitalRotationSpeed = 0
	layers[LayerCore].Geometry = core

	g := DefaultGlobals()
	g.BreathingFrequency = 2.0
	g.BreathingAmplitude = 0.05
	cfg, err := NewConfig(layers, g, StageState{Stage: NumLayers})
	require.NoError(t, err)

	period := 1 / g.BreathingFrequency
	for _, p := range gridPoints {
		for _, tm := range []float64{0, 0.11, 3.7} {
			_, a1 := cfg.Sample(p, tm)
			_, a2 := cfg.Sample(p, tm+period)
			assert.InDelta(t, a1, a2, 1e-9, "period broken at %v t=%g", p, tm)
		}
	}
}

// Ring midline: well inside the fill region the wash saturates the glow.
func TestRingFillMidline(t *testing.T) {
	ring := RingGeometry{Inner: 0.85, Outer: 0.9, Thickness: 0.006}
	cfg := soloLayer(t, LayerMiddleRing, LayerConfig{Enabled: true, Intensity: 1, Speed: 0, Geometry: ring})

	_, a := cfg.Sample(Vec2{0.875, 0}, 0)
	assert.Greater(t, a, 0.5)
	assert.LessOrEqual(t, a, 1.0)

	// Outside the annulus and away from the edges the glow falls right off.
	_, far := cfg.Sample(Vec2{0.5, 0}, 0)
	assert.Less(t, far, 0.05)
}

// The six-square hexagram repeats every pi/6 of rotation.
func TestHexagramSymmetry(t *testing.T) {
	hex := PolygonOutlineGeometry{Count: 6, Size: 0.601, Thickness: 0.0015, SnapRotation: true}
	cfg := soloLayer(t, LayerHexagram, LayerConfig{Enabled: true, Intensity: 1, Speed: 0, Geometry: hex})

	for _, p := range []Vec2{{0.3, 0.1}, {0.55, -0.2}, {0.05, 0.6}, {-0.41, -0.37}} {
		_, a := cfg.Sample(p, 0)
		for k := 1; k < 12; k++ {
			_, ar := cfg.Sample(rotate(p, float64(k)*math.Pi/6), 0)
			assert.InDelta(t, a, ar, 1e-6, "symmetry broken at %v step %d", p, k)
		}
	}
}

// A disabled layer's parameters must be completely inert.
func TestDisabledLayerInert(t *testing.T) {
	layers := DefaultLayers()
	layers[LayerHexagram].Enabled = false
	cfgA, err := NewConfig(layers, DefaultGlobals(), StageState{Stage: NumLayers})
	require.NoError(t, err)

	mutated := layers
	mutated[LayerHexagram].Intensity = 40
	mutated[LayerHexagram].Speed = -9
	mutated[LayerHexagram].Geometry = PolygonOutlineGeometry{Count: 11, Size: 0.9, Thickness: 0.02}
	cfgB, err := NewConfig(mutated, DefaultGlobals(), StageState{Stage: NumLayers})
	require.NoError(t, err)

	for _, p := range gridPoints {
		for _, tm := range []float64{0, 0.77, 5.2} {
			cA, aA := cfgA.Sample(p, tm)
			cB, aB := cfgB.Sample(p, tm)
			assert.Equal(t, aA, aB)
			assert.Equal(t, cA, cB)
		}
	}
}

func TestStageEndpoints(t *testing.T) {
	modes := []TransitionMode{TransitionInstant, TransitionFade, TransitionScale, TransitionFadeScale}

	baseline, err := NewConfig(DefaultLayers(), DefaultGlobals(), StageState{Stage: NumLayers, Mode: TransitionFade})
	require.NoError(t, err)

	for _, m := range modes {
		full, err := NewConfig(DefaultLayers(), DefaultGlobals(), StageState{Stage: NumLayers, Mode: m, FromCenter: true})
		require.NoError(t, err)
		hidden, err := NewConfig(DefaultLayers(), DefaultGlobals(), StageState{Stage: 0, Mode: m, FromCenter: true})
		require.NoError(t, err)

		for _, p := range gridPoints {
			_, want := baseline.Sample(p, 0.6)
			_, got := full.Sample(p, 0.6)
			assert.Equal(t, want, got, "mode %v at full stage", m)

			_, zero := hidden.Sample(p, 0.6)
			assert.Zero(t, zero, "mode %v at stage 0", m)
		}
	}
}

func TestValidationRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*[NumLayers]LayerConfig, *GlobalParams, *StageState)
	}{
		{"nil geometry", func(l *[NumLayers]LayerConfig, _ *GlobalParams, _ *StageState) {
			l[0].Geometry = nil
		}},
		{"negative intensity", func(l *[NumLayers]LayerConfig, _ *GlobalParams, _ *StageState) {
			l[2].Intensity = -0.1
		}},
		{"negative radius", func(l *[NumLayers]LayerConfig, _ *GlobalParams, _ *StageState) {
			l[3].Geometry = RingGeometry{Inner: -0.1, Outer: 0.5, Thickness: 0.002}
		}},
		{"outer below inner", func(l *[NumLayers]LayerConfig, _ *GlobalParams, _ *StageState) {
			l[3].Geometry = RingGeometry{Inner: 0.6, Outer: 0.5, Thickness: 0.002}
		}},
		{"thin line", func(l *[NumLayers]LayerConfig, _ *GlobalParams, _ *StageState) {
			l[3].Geometry = RingGeometry{Inner: 0.5, Outer: 0.55, Thickness: 1e-7}
		}},
		{"spoke count", func(l *[NumLayers]LayerConfig, _ *GlobalParams, _ *StageState) {
			l[6].Geometry = SpokesGeometry{Inner: 0.2, Outer: 0.3, Count: 2, Thickness: 0.005}
		}},
		{"polygon count", func(l *[NumLayers]LayerConfig, _ *GlobalParams, _ *StageState) {
			l[1].Geometry = PolygonOutlineGeometry{Count: 2, Size: 0.6, Thickness: 0.0015}
		}},
		{"dot count", func(l *[NumLayers]LayerConfig, _ *GlobalParams, _ *StageState) {
			l[2].Geometry = DotRingGeometry{Count: 3, OrbitRadius: 0.8, RingOuter: 0.05, RingThickness: 0.004, DotThickness: 0.008}
		}},
		{"orbital count", func(l *[NumLayers]LayerConfig, _ *GlobalParams, _ *StageState) {
			g := l[7].Geometry.(OrbitalClusterGeometry)
			g.OrbitalCount = 0
			l[7].Geometry = g
		}},
		{"orbital breath collapse", func(l *[NumLayers]LayerConfig, _ *GlobalParams, _ *StageState) {
			g := l[7].Geometry.(OrbitalClusterGeometry)
			g.BreathCenter = 0.03
			l[7].Geometry = g
		}},
		{"breathing collapse", func(_ *[NumLayers]LayerConfig, g *GlobalParams, _ *StageState) {
			g.BreathingAmplitude = 1.5
		}},
		{"glow exponent", func(_ *[NumLayers]LayerConfig, g *GlobalParams, _ *StageState) {
			g.GlowExponent = 0.5
		}},
		{"negative master intensity", func(_ *[NumLayers]LayerConfig, g *GlobalParams, _ *StageState) {
			g.MasterIntensity = -1
		}},
		{"negative color", func(_ *[NumLayers]LayerConfig, g *GlobalParams, _ *StageState) {
			g.Color.G = -0.2
		}},
		{"stage range", func(_ *[NumLayers]LayerConfig, _ *GlobalParams, s *StageState) {
			s.Stage = 8.5
		}},
		{"stage NaN", func(_ *[NumLayers]LayerConfig, _ *GlobalParams, s *StageState) {
			s.Stage = math.NaN()
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layers := DefaultLayers()
			globals := DefaultGlobals()
			stage := StageState{Stage: NumLayers, Mode: TransitionFade}
			tc.mutate(&layers, &globals, &stage)
			_, err := NewConfig(layers, globals, stage)
			assert.Error(t, err)
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	_, err := NewConfig(DefaultLayers(), DefaultGlobals(), StageState{Stage: NumLayers, Mode: TransitionFade, FromCenter: true})
	assert.NoError(t, err)
}
