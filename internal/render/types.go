package render

// Color is one linear-light pixel of the panel framebuffer.
type Color struct{ R, G, B float32 }

// Dimensions is the panel size in pixels.
type Dimensions struct{ W, H int }

func (d Dimensions) Count() int { return d.W * d.H }

// Uniforms carries the tunable state shared between the engine, scenes and
// the control surface. Params/Bools are free-form and scene-defined.
type Uniforms struct {
	GlobalBrightness float64
	TimeScale        float64
	Params           map[string]float64
	Bools            map[string]bool
}

func NewUniforms() *Uniforms {
	return &Uniforms{
		GlobalBrightness: 1.0,
		TimeScale:        1.0,
		Params:           map[string]float64{},
		Bools:            map[string]bool{},
	}
}

// Renderer draws a full frame into dst (len == dim.Count(), row-major,
// origin top-left) for time t.
type Renderer interface {
	Name() string
	Presets() []string
	ApplyPreset(name string, u *Uniforms)
	Render(dst []Color, dim Dimensions, t float64, u *Uniforms)
}

type Registry struct{ m map[string]Renderer }

func NewRegistry() *Registry { return &Registry{m: map[string]Renderer{}} }

func (r *Registry) Register(rr Renderer) {
	if rr == nil {
		return
	}
	r.m[rr.Name()] = rr
}

func (r *Registry) Get(name string) (Renderer, bool) { rr, ok := r.m[name]; return rr, ok }

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	return out
}
