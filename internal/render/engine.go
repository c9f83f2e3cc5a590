package render

import (
	"errors"
	"time"
)

// Driver abstracts the frame sink (LED transport, preview, file dump).
type Driver interface {
	Write([]Color) error
}

// Engine renders frames with an active Renderer, optionally crossfading to a
// next one, applies post-processing and writes the result to the driver.
type Engine struct {
	Dim Dimensions
	Drv Driver

	RActive Renderer
	RNext   Renderer
	UActive *Uniforms
	UNext   *Uniforms

	BufA []Color // active
	BufB []Color // next (during crossfade)
	Out  []Color // mixed + post

	alpha  float64
	fading bool

	t0 time.Time

	post PostPipeline

	// last frame durations, milliseconds
	Last struct {
		RenderMS float64
		PostMS   float64
	}
}

// PostPipeline groups post stages; all are optional.
type PostPipeline struct {
	ToneMap func([]Color)
	Limiter func([]Color, *Uniforms)
}

// NewEngine allocates framebuffers and wires the default post pipeline.
func NewEngine(dim Dimensions, drv Driver, r Renderer, u *Uniforms) (*Engine, error) {
	if dim.W <= 0 || dim.H <= 0 {
		return nil, errors.New("invalid dimensions")
	}
	n := dim.Count()
	return &Engine{
		Dim:     dim,
		Drv:     drv,
		RActive: r,
		UActive: u,
		BufA:    make([]Color, n),
		BufB:    make([]Color, n),
		Out:     make([]Color, n),
		post: PostPipeline{
			ToneMap: DefaultToneMap,
			Limiter: DefaultLimiter,
		},
		t0: time.Now(),
	}, nil
}

// Now returns seconds since engine start, scaled by TimeScale.
func (e *Engine) Now() float64 {
	scale := 1.0
	if e.UActive != nil && e.UActive.TimeScale != 0 {
		scale = e.UActive.TimeScale
	}
	return time.Since(e.t0).Seconds() * scale
}

// RenderOnce renders a single frame at absolute time t (seconds).
// If t < 0, it uses Engine.Now().
func (e *Engine) RenderOnce(t float64) error {
	if t < 0 {
		t = e.Now()
	}
	start := time.Now()

	if e.RActive != nil {
		e.RActive.Render(e.BufA, e.Dim, t, e.UActive)
	}

	if e.fading && e.RNext != nil {
		e.RNext.Render(e.BufB, e.Dim, t, e.UNext)
		Mix(e.Out, e.BufA, e.BufB, e.alpha)
	} else {
		copy(e.Out, e.BufA)
	}

	postStart := time.Now()
	if e.post.ToneMap != nil {
		e.post.ToneMap(e.Out)
	}
	if e.post.Limiter != nil {
		e.post.Limiter(e.Out, e.UActive)
	}
	e.Last.PostMS = float64(time.Since(postStart).Microseconds()) / 1000.0

	if e.Drv != nil {
		if err := e.Drv.Write(e.Out); err != nil {
			return err
		}
	}

	e.Last.RenderMS = float64(time.Since(start).Microseconds()) / 1000.0
	return nil
}

func (e *Engine) UseFilmicPost() {
	e.SetPost(PostPipeline{
		ToneMap: func(buf []Color) { FilmicToneMap(buf, e.UActive) },
		Limiter: DefaultLimiter,
	})
}

func (e *Engine) SetPost(p PostPipeline) { e.post = p }

// ---- hooks the sequencer and control surface drive ----

// SetRenderer switches the active renderer immediately.
// If preset != "", ApplyPreset is called on the renderer with UActive.
func (e *Engine) SetRenderer(name string, preset string, reg *Registry) error {
	if reg == nil {
		return errors.New("registry is nil")
	}
	rr, ok := reg.Get(name)
	if !ok {
		return errors.New("renderer not found: " + name)
	}
	e.RActive = rr
	if preset != "" {
		rr.ApplyPreset(preset, e.UActive)
	}
	e.fading = false
	e.alpha = 0
	return nil
}

// ArmNext prepares the next renderer for crossfade.
func (e *Engine) ArmNext(name string, preset string, reg *Registry) error {
	if reg == nil {
		return errors.New("registry is nil")
	}
	rr, ok := reg.Get(name)
	if !ok {
		return errors.New("renderer not found: " + name)
	}
	e.RNext = rr
	if e.UNext == nil {
		e.UNext = &Uniforms{
			GlobalBrightness: e.UActive.GlobalBrightness,
			TimeScale:        e.UActive.TimeScale,
			Params:           map[string]float64{},
			Bools:            map[string]bool{},
		}
		for k, v := range e.UActive.Params {
			e.UNext.Params[k] = v
		}
		for k, v := range e.UActive.Bools {
			e.UNext.Bools[k] = v
		}
	}
	if preset != "" {
		rr.ApplyPreset(preset, e.UNext)
	}
	e.fading = true
	return nil
}

// SetCrossfade sets mix alpha 0..1; reaching 1 promotes next to active.
func (e *Engine) SetCrossfade(alpha float64) {
	switch {
	case alpha <= 0:
		e.alpha = 0
		e.fading = false
	case alpha >= 1:
		e.alpha = 1
		e.fading = false
		if e.RNext != nil {
			e.RActive = e.RNext
			e.UActive = e.UNext
		}
		e.RNext = nil
	default:
		e.alpha = alpha
		e.fading = true
	}
}

// SetParam updates active uniforms.
func (e *Engine) SetParam(name string, v float64) {
	if e.UActive == nil {
		return
	}
	if e.UActive.Params == nil {
		e.UActive.Params = map[string]float64{}
	}
	e.UActive.Params[name] = v
}

// SetBool updates active uniforms.
func (e *Engine) SetBool(name string, b bool) {
	if e.UActive == nil {
		return
	}
	if e.UActive.Bools == nil {
		e.UActive.Bools = map[string]bool{}
	}
	e.UActive.Bools[name] = b
}
