// Package anim drives the emblem's staged reveal over time: spawning sweeps
// the stage 0 -> 8, despawning sweeps it back to 0. The animator is pure
// bookkeeping; callers tick it with their frame delta and feed the stage to
// the renderer.
package anim

import "github.com/cyberpunk042/glyphfield/internal/emblem"

type State int

const (
	Idle State = iota
	Spawning
	Despawning
)

func (s State) String() string {
	switch s {
	case Spawning:
		return "spawning"
	case Despawning:
		return "despawning"
	}
	return "idle"
}

// minStageSeconds guards against a zero or negative per-stage duration.
const minStageSeconds = 0.01

// Animator advances the reveal stage at a fixed rate. Not goroutine-safe;
// own it from the render loop.
type Animator struct {
	state      State
	stage      float64
	stageSpeed float64 // seconds per stage
	animate    bool    // false jumps instead of sweeping
}

// New returns an idle animator at full reveal. stageSpeed is seconds per
// stage; the stock value is 0.5 (a four second full spawn).
func New(stageSpeed float64) *Animator {
	return &Animator{state: Idle, stage: emblem.NumLayers, stageSpeed: stageSpeed, animate: true}
}

func (a *Animator) State() State   { return a.state }
func (a *Animator) Stage() float64 { return a.stage }

// SetAnimate controls whether Spawn/Despawn sweep the stage or jump it.
func (a *Animator) SetAnimate(on bool) { a.animate = on }

func (a *Animator) SetStageSpeed(s float64) { a.stageSpeed = s }

// SetStage pins the stage directly and cancels any running sweep.
func (a *Animator) SetStage(v float64) {
	if v < 0 {
		v = 0
	}
	if v > emblem.NumLayers {
		v = emblem.NumLayers
	}
	a.stage = v
	a.state = Idle
}

// Spawn starts revealing from stage 0. Without animation it jumps straight
// to full.
func (a *Animator) Spawn() {
	if !a.animate {
		a.stage = emblem.NumLayers
		a.state = Idle
		return
	}
	a.stage = 0
	a.state = Spawning
}

// Despawn sweeps from the current stage back to 0. Without animation it
// jumps straight to hidden.
func (a *Animator) Despawn() {
	if !a.animate {
		a.stage = 0
		a.state = Idle
		return
	}
	a.state = Despawning
}

// Tick advances the sweep by dt seconds and returns the stage plus whether a
// sweep finished on this tick.
func (a *Animator) Tick(dt float64) (stage float64, done bool) {
	if dt < 0 {
		dt = 0
	}
	perStage := a.stageSpeed
	if perStage < minStageSeconds {
		perStage = minStageSeconds
	}
	delta := dt / perStage

	switch a.state {
	case Spawning:
		a.stage += delta
		if a.stage >= emblem.NumLayers {
			a.stage = emblem.NumLayers
			a.state = Idle
			done = true
		}
	case Despawning:
		a.stage -= delta
		if a.stage <= 0 {
			a.stage = 0
			a.state = Idle
			done = true
		}
	}
	return a.stage, done
}
