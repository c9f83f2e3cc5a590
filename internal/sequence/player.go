package sequence

import (
	"errors"
	"math"
	"sync"
)

func NewPlayer(h Hooks) *Player {
	return &Player{State: Idle, hooks: h}
}

// Load replaces the current show and resets to Idle at time zero.
func (p *Player) Load(show Show) error {
	if len(show.Cues) == 0 {
		return errors.New("show has no cues")
	}
	p.show = show
	p.nowS = 0
	p.idx = 0
	p.State = Idle
	p.armed = false
	p.despawned = false
	p.lastAlpha = 0
	return nil
}

// Start primes the first cue and begins playback.
func (p *Player) Start() {
	if p.State == Running || len(p.show.Cues) == 0 {
		return
	}
	p.State = Running
	p.enterCue()
}

func (p *Player) Pause() { p.State = Paused }

func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop halts playback and rewinds to the start.
func (p *Player) Stop() {
	p.State = Idle
	p.nowS = 0
	p.idx = 0
	p.armed = false
	p.despawned = false
	if p.hooks.SetCrossfade != nil {
		p.hooks.SetCrossfade(0)
	}
}

// Seek jumps to absolute show time t, clamped into [0, total).
func (p *Player) Seek(t float64) {
	if len(p.show.Cues) == 0 {
		return
	}
	if t < 0 {
		t = 0
	}
	if total := p.totalDuration(); total > 0 && t >= total {
		t = math.Nextafter(total, -1)
	}
	acc := 0.0
	idx := 0
	for i, c := range p.show.Cues {
		if t < acc+c.DurationS {
			idx = i
			break
		}
		acc += c.DurationS
	}
	p.idx = idx
	p.nowS = t
	p.armed = false
	p.despawned = false
	cue := p.show.Cues[p.idx]
	if p.hooks.SetRenderer != nil {
		p.hooks.SetRenderer(cue.Renderer, cue.Preset)
	}
	if p.hooks.SetCrossfade != nil {
		p.hooks.SetCrossfade(0)
	}
}

// Tick advances the show by dt seconds and emits control hooks.
func (p *Player) Tick(dt float64) {
	if p.State != Running || len(p.show.Cues) == 0 || dt <= 0 {
		return
	}
	p.nowS += dt

	cue, localT := p.currentCue()
	for name, env := range cue.Params {
		if p.hooks.SetParam != nil {
			p.hooks.SetParam(name, env.Eval(localT))
		}
	}
	for name, env := range cue.Bools {
		if p.hooks.SetBool != nil {
			p.hooks.SetBool(name, env.BoolEval(localT))
		}
	}

	remain := cue.DurationS - localT
	if cue.DespawnLeadS > 0 && !p.despawned && remain <= cue.DespawnLeadS {
		if p.hooks.Despawn != nil {
			p.hooks.Despawn()
		}
		p.despawned = true
	}

	if cue.XFadeS > 0 && remain <= cue.XFadeS && remain >= 0 {
		next := p.nextIndex()
		if !p.armed && next != -1 && p.hooks.ArmNext != nil {
			nc := p.show.Cues[next]
			p.hooks.ArmNext(nc.Renderer, nc.Preset)
			p.armed = true
		}
		alpha := clamp01(1.0 - remain/cue.XFadeS)
		if p.hooks.SetCrossfade != nil && alpha != p.lastAlpha {
			p.hooks.SetCrossfade(alpha)
			p.lastAlpha = alpha
		}
	}

	if localT >= cue.DurationS {
		p.advanceCue()
	}
}

func (p *Player) currentCue() (Cue, float64) {
	acc := 0.0
	for i := 0; i < p.idx; i++ {
		acc += p.show.Cues[i].DurationS
	}
	return p.show.Cues[p.idx], p.nowS - acc
}

func (p *Player) totalDuration() float64 {
	total := 0.0
	for _, c := range p.show.Cues {
		total += c.DurationS
	}
	return total
}

func (p *Player) nextIndex() int {
	ni := p.idx + 1
	if ni >= len(p.show.Cues) {
		if p.show.Loop {
			return 0
		}
		return -1
	}
	return ni
}

// enterCue applies the current cue's renderer, fade reset and spawn trigger.
func (p *Player) enterCue() {
	cue := p.show.Cues[p.idx]
	if p.hooks.SetRenderer != nil {
		p.hooks.SetRenderer(cue.Renderer, cue.Preset)
	}
	if p.hooks.SetCrossfade != nil {
		p.hooks.SetCrossfade(0)
	}
	if cue.Spawn && p.hooks.Spawn != nil {
		p.hooks.Spawn()
	}
	p.armed = false
	p.despawned = false
	p.lastAlpha = 0
}

func (p *Player) advanceCue() {
	next := p.nextIndex()
	if next == -1 {
		p.State = Idle
		if p.hooks.SetCrossfade != nil {
			p.hooks.SetCrossfade(0)
		}
		return
	}
	if next == 0 {
		// looped around
		p.nowS -= p.totalDuration()
	}
	p.idx = next
	p.enterCue()
}

// SafePlayer serializes access for callers outside the render loop.
type SafePlayer struct {
	mu sync.Mutex
	P  *Player
}

func NewSafePlayer(h Hooks) *SafePlayer {
	return &SafePlayer{P: NewPlayer(h)}
}

func (s *SafePlayer) With(f func(p *Player)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.P)
}
