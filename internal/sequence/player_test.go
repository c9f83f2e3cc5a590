package sequence

import "testing"

func TestEnvelopeEval(t *testing.T) {
	env := Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: "linear"},
		{T: 10, V: 10, Ease: "linear"},
	}}
	if v := env.Eval(-1); v != 0 {
		t.Fatalf("expected 0 before start, got %v", v)
	}
	if v := env.Eval(5); v != 5 {
		t.Fatalf("expected 5 at t=5, got %v", v)
	}
	if v := env.Eval(11); v != 10 {
		t.Fatalf("expected 10 after end, got %v", v)
	}
}

func TestEnvelopeEases(t *testing.T) {
	env := Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: "smooth"},
		{T: 1, V: 1},
	}}
	if v := env.Eval(0.5); v != 0.5 {
		t.Fatalf("smoothstep midpoint should be 0.5, got %v", v)
	}
	if v := env.Eval(0.25); v >= 0.25 {
		t.Fatalf("smoothstep should lag linear early on, got %v", v)
	}
}

func TestShowCrossfade(t *testing.T) {
	log := []string{}
	h := Hooks{
		SetRenderer:  func(name, preset string) { log = append(log, "Set:"+name+"/"+preset) },
		ArmNext:      func(name, preset string) { log = append(log, "Arm:"+name+"/"+preset) },
		SetCrossfade: func(a float64) {},
		SetParam:     func(name string, v float64) {},
	}
	p := NewPlayer(h)
	show := Show{
		Version: "show.v1",
		Cues: []Cue{
			{Name: "opening", Renderer: "circle", Preset: "warm-gold", DurationS: 4, XFadeS: 2},
			{Name: "finale", Renderer: "circle", Preset: "azure-sigil", DurationS: 4},
		},
	}
	if err := p.Load(show); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	p.Tick(1.9) // before the fade window
	p.Tick(0.2) // inside the window: arms the next cue
	p.Tick(0.9)
	p.Tick(1.0) // cue boundary: switches

	want := []string{"Set:circle/warm-gold", "Arm:circle/azure-sigil", "Set:circle/azure-sigil"}
	if len(log) != len(want) {
		t.Fatalf("unexpected log: %#v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("unexpected log order: %#v", log)
		}
	}
}

func TestShowSpawnDespawnTriggers(t *testing.T) {
	var spawns, despawns int
	h := Hooks{
		Spawn:   func() { spawns++ },
		Despawn: func() { despawns++ },
	}
	p := NewPlayer(h)
	show := Show{
		Cues: []Cue{
			{Name: "rite", Renderer: "circle", DurationS: 10, Spawn: true, DespawnLeadS: 2},
		},
	}
	if err := p.Load(show); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	if spawns != 1 {
		t.Fatalf("spawn should fire on cue entry, got %d", spawns)
	}

	p.Tick(7.9)
	if despawns != 0 {
		t.Fatal("despawn fired too early")
	}
	p.Tick(0.2) // crosses the lead threshold
	if despawns != 1 {
		t.Fatalf("despawn should fire once, got %d", despawns)
	}
	p.Tick(1.0)
	if despawns != 1 {
		t.Fatal("despawn must not repeat within the cue")
	}
}

func TestShowParamAutomation(t *testing.T) {
	got := map[string]float64{}
	p := NewPlayer(Hooks{SetParam: func(name string, v float64) { got[name] = v }})
	show := Show{
		Cues: []Cue{{
			Name: "ramp", Renderer: "circle", DurationS: 10,
			Params: map[string]Envelope{
				"Stage": {Keys: []Keyframe{{T: 0, V: 0}, {T: 4, V: 8}}},
			},
		}},
	}
	if err := p.Load(show); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	p.Tick(2.0)
	if v := got["Stage"]; v != 4 {
		t.Fatalf("expected Stage=4 mid-ramp, got %g", v)
	}
}

func TestShowLoopRewinds(t *testing.T) {
	sets := 0
	p := NewPlayer(Hooks{SetRenderer: func(name, preset string) { sets++ }})
	show := Show{
		Loop: true,
		Cues: []Cue{
			{Name: "a", Renderer: "circle", DurationS: 1},
			{Name: "b", Renderer: "circle", DurationS: 1},
		},
	}
	if err := p.Load(show); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	p.Tick(1.05) // into b
	p.Tick(1.0)  // wraps back to a
	if p.State != Running {
		t.Fatalf("looped show should keep running, state %v", p.State)
	}
	if sets != 3 {
		t.Fatalf("expected 3 renderer sets (a, b, a), got %d", sets)
	}
}
