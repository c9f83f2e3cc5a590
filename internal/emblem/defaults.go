package emblem

// Default returns the stock warm-gold emblem: outer ring with radiation
// ticks, hexagram, two dot rings, middle ring, inner triangle, inner
// radiation and the spinning core, fully revealed.
func Default() *Config {
	cfg, err := NewConfig(DefaultLayers(), DefaultGlobals(), StageState{
		Stage:      NumLayers,
		Mode:       TransitionFade,
		FromCenter: true,
	})
	if err != nil {
		panic("emblem: bad defaults: " + err.Error())
	}
	return cfg
}

// DefaultGlobals is the stock global parameter set.
func DefaultGlobals() GlobalParams {
	return GlobalParams{
		BreathingFrequency: 1.0,
		BreathingAmplitude: 0.02,
		BreathingCenter:    1.0,
		RotationSpeed:      1.0,
		Color:              RGB{1.0, 0.95, 0.8},
		GlowExponent:       2.5,
		MasterIntensity:    1.0,
	}
}

// DefaultLayers is the stock eight-layer arrangement.
func DefaultLayers() [NumLayers]LayerConfig {
	return [NumLayers]LayerConfig{
		LayerOuterRing: {
			Enabled: true, Intensity: 1, Speed: 1,
			Geometry: CompositeRingSpokes{
				Ring:   RingGeometry{Inner: 0.85, Outer: 0.9, Thickness: 0.006},
				Spokes: SpokesGeometry{Inner: 0.87, Outer: 0.88, Count: 36, Thickness: 0.0008},
			},
		},
		LayerHexagram: {
			Enabled: true, Intensity: 1, Speed: 1,
			Geometry: PolygonOutlineGeometry{Count: 6, Size: 0.601, Thickness: 0.0015, SnapRotation: true},
		},
		LayerOuterDots: {
			Enabled: true, Intensity: 1, Speed: 1,
			Geometry: DotRingGeometry{
				Count: 12, OrbitRadius: 0.875,
				RingInner: 0.001, RingOuter: 0.05, RingThickness: 0.004,
				DotRadius: 0.001, DotThickness: 0.008,
				RotationOffset: 0.262,
			},
		},
		LayerMiddleRing: {
			Enabled: true, Intensity: 1, Speed: 0,
			Geometry: RingGeometry{Inner: 0.5, Outer: 0.55, Thickness: 0.002},
		},
		LayerInnerTriangle: {
			Enabled: true, Intensity: 1, Speed: -1,
			Geometry: PolygonOutlineGeometry{Count: 3, Size: 0.36, Thickness: 0.0015, SnapRotation: true},
		},
		LayerInnerDots: {
			Enabled: true, Intensity: 1, Speed: -1,
			Geometry: DotRingGeometry{
				Count: 12, OrbitRadius: 0.53,
				RingInner: 0.001, RingOuter: 0.035, RingThickness: 0.004,
				DotRadius: 0.001, DotThickness: 0.001,
				RotationOffset: 0.262,
			},
		},
		LayerInnerRadiation: {
			Enabled: true, Intensity: 1, Speed: 1,
			Geometry: SpokesGeometry{Inner: 0.25, Outer: 0.3, Count: 12, Thickness: 0.005},
		},
		LayerCore: {
			Enabled: true, Intensity: 1, Speed: -1,
			Geometry: OrbitalClusterGeometry{
				BreathAmplitude: 0.04, BreathCenter: 1.1,
				OrbitalCount: 6, StartRadius: 0.13, RadiusStep: 0.01,
				OrbitalDistance: 0.1, OrbitalThickness: 0.002,
				OrbitalRotationSpeed: 1.0,
				CenterRadius:         0.04, CenterThickness: 0.004,
			},
		},
	}
}
