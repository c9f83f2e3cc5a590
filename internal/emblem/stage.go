package emblem

import (
	"fmt"
	"math"
)

// TransitionMode selects how layers appear as the reveal stage advances.
type TransitionMode int

const (
	TransitionInstant TransitionMode = iota
	TransitionFade
	TransitionScale
	TransitionFadeScale
)

func (m TransitionMode) String() string {
	switch m {
	case TransitionInstant:
		return "instant"
	case TransitionFade:
		return "fade"
	case TransitionScale:
		return "scale"
	case TransitionFadeScale:
		return "fade+scale"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseTransitionMode maps a config string to its mode.
func ParseTransitionMode(s string) (TransitionMode, error) {
	switch s {
	case "instant":
		return TransitionInstant, nil
	case "fade":
		return TransitionFade, nil
	case "scale":
		return TransitionScale, nil
	case "fade+scale", "fadescale":
		return TransitionFadeScale, nil
	}
	return 0, fmt.Errorf("unknown transition mode %q", s)
}

// StageState is the staged-reveal controller. Stage runs 0 (nothing shown)
// to 8 (fully revealed); fractional values animate the transition of the
// layer currently crossing its threshold.
type StageState struct {
	Stage      float64
	Mode       TransitionMode
	FromCenter bool // reveal innermost layer first
}

func (s StageState) validate() error {
	if math.IsNaN(s.Stage) || s.Stage < 0 || s.Stage > NumLayers {
		return fmt.Errorf("stage %g outside [0, %d]", s.Stage, NumLayers)
	}
	if s.Mode < TransitionInstant || s.Mode > TransitionFadeScale {
		return fmt.Errorf("unknown transition mode %d", int(s.Mode))
	}
	return nil
}

// instantThreshold hides a layer until its phase has measurably started, so
// instant mode never flashes a layer during the exact boundary frame.
const instantThreshold = 0.01

// phase is the raw 0..1 reveal progress for the layer in slot i (0-based).
func (s StageState) phase(i int) float64 {
	order := float64(i + 1)
	if s.FromCenter {
		order = float64(NumLayers - i)
	}
	return clamp01(s.Stage - order + 1)
}

// Visibility returns the brightness multiplier the stage controller applies
// to layer slot i (0-based). A zero multiplier means the layer is skipped.
func (s StageState) Visibility(i int) float64 {
	ph := s.phase(i)
	switch s.Mode {
	case TransitionInstant:
		if ph > instantThreshold {
			return 1
		}
		return 0
	case TransitionFade, TransitionFadeScale:
		return smoothstep01(ph)
	case TransitionScale:
		if ph > 0 {
			return 1
		}
		return 0
	}
	return 1
}

// PositionScale returns the divisor applied to sample positions in the
// scaling modes. The whole emblem grows from 30% to full size as the stage
// sweeps 0..8; 1 means no scaling.
func (s StageState) PositionScale() float64 {
	switch s.Mode {
	case TransitionScale, TransitionFadeScale:
		return lerp(0.3, 1, smoothstep01(s.Stage/NumLayers))
	}
	return 1
}
