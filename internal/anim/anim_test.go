package anim

import (
	"math"
	"testing"
)

func TestSpawnSweep(t *testing.T) {
	a := New(0.5) // 4s for the full sweep
	a.Spawn()
	if a.State() != Spawning || a.Stage() != 0 {
		t.Fatalf("spawn should reset to stage 0, got %v stage %g", a.State(), a.Stage())
	}

	stage, done := a.Tick(1.0)
	if done || math.Abs(stage-2.0) > 1e-9 {
		t.Fatalf("after 1s expected stage 2, got %g done=%v", stage, done)
	}

	stage, done = a.Tick(10.0)
	if !done || stage != 8 || a.State() != Idle {
		t.Fatalf("sweep should finish clamped at 8, got %g done=%v state=%v", stage, done, a.State())
	}

	// done fires only on the finishing tick
	if _, again := a.Tick(1.0); again {
		t.Fatal("done must not repeat once idle")
	}
}

func TestDespawnFromPartialStage(t *testing.T) {
	a := New(0.5)
	a.SetStage(3)
	a.Despawn()

	stage, done := a.Tick(0.5)
	if done || math.Abs(stage-2.0) > 1e-9 {
		t.Fatalf("after 0.5s expected stage 2, got %g done=%v", stage, done)
	}
	stage, done = a.Tick(5)
	if !done || stage != 0 {
		t.Fatalf("despawn should clamp at 0, got %g done=%v", stage, done)
	}
}

func TestNoAnimateJumps(t *testing.T) {
	a := New(0.5)
	a.SetAnimate(false)

	a.Despawn()
	if a.Stage() != 0 || a.State() != Idle {
		t.Fatalf("despawn without animation should jump to 0, got %g %v", a.Stage(), a.State())
	}
	a.Spawn()
	if a.Stage() != 8 || a.State() != Idle {
		t.Fatalf("spawn without animation should jump to 8, got %g %v", a.Stage(), a.State())
	}
}

func TestStageSpeedFloor(t *testing.T) {
	a := New(0) // degenerate speed clamps to the floor, not a division blowup
	a.Spawn()
	stage, _ := a.Tick(0.01)
	if math.IsInf(stage, 1) || math.IsNaN(stage) {
		t.Fatalf("stage must stay finite, got %g", stage)
	}
}

func TestSetStageClamps(t *testing.T) {
	a := New(0.5)
	a.SetStage(12)
	if a.Stage() != 8 {
		t.Fatalf("expected clamp to 8, got %g", a.Stage())
	}
	a.SetStage(-1)
	if a.Stage() != 0 {
		t.Fatalf("expected clamp to 0, got %g", a.Stage())
	}
}
