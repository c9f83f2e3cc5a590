// Package sequence plays scripted shows: timed cues that pick a renderer
// and preset, automate parameters with keyframe envelopes, trigger the
// emblem's spawn/despawn sweeps, and crossfade into the next cue.
package sequence

// Keyframe is a value at time T (seconds, cue-local). The easing function
// applies to the segment starting at this keyframe.
type Keyframe struct {
	T    float64 `yaml:"t"`
	V    float64 `yaml:"v"`
	Ease string  `yaml:"ease,omitempty"` // "linear","smooth","cubic"
}

// Envelope is a list of keyframes sorted by T; Eval(t) interpolates.
type Envelope struct {
	Keys []Keyframe `yaml:"keys"`
}

// Cue is one segment of a show.
type Cue struct {
	Name      string  `yaml:"name"`
	Renderer  string  `yaml:"renderer"`
	Preset    string  `yaml:"preset,omitempty"`
	DurationS float64 `yaml:"duration_s"`
	XFadeS    float64 `yaml:"xfade_s,omitempty"`

	// Spawn sweeps the emblem in when the cue starts; DespawnLeadS sweeps
	// it out that many seconds before the cue ends (0 means never).
	Spawn        bool    `yaml:"spawn,omitempty"`
	DespawnLeadS float64 `yaml:"despawn_lead_s,omitempty"`

	Params map[string]Envelope `yaml:"params,omitempty"`
	Bools  map[string]Envelope `yaml:"bools,omitempty"` // thresholded at 0.5
}

// Show is a full cue list.
type Show struct {
	Version string `yaml:"version"` // e.g. "show.v1"
	Loop    bool   `yaml:"loop,omitempty"`
	Cues    []Cue  `yaml:"cues"`
}

type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are the callbacks a Player drives; all are optional.
type Hooks struct {
	SetRenderer func(name, preset string)
	SetParam    func(name string, v float64)
	SetBool     func(name string, b bool)

	ArmNext      func(name, preset string)
	SetCrossfade func(alpha float64)

	Spawn   func()
	Despawn func()
}

// Player owns the show timeline and drives the engine through Hooks.
// Tick it from the render loop; it is not goroutine-safe on its own.
type Player struct {
	State PlayerState

	show Show
	nowS float64 // position within the show
	idx  int     // current cue index

	armed     bool
	lastAlpha float64
	despawned bool // despawn already fired for the current cue

	hooks Hooks
}
