// Package tests provides panel bring-up patterns: wiring checks that run
// instead of the renderer and write straight to the strip.
package tests

import "github.com/cyberpunk042/glyphfield/internal/layout"

type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep" // one lit LED walking the strip
	RGBTest    Kind = "rgb_channels"
	RowSweep   Kind = "row_sweep" // one lit row walking down the panel
)

type Plan struct{ Kind Kind }

type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner { return &Runner{plan: plan} }
func (r *Runner) Kind() Kind      { return r.plan.Kind }

// Step fills rgb (strip order); returns false when the pattern is complete.
func (r *Runner) Step(l layout.Layout, rgb []byte) bool {
	n := l.Count()
	for i := 0; i < n*3; i++ {
		rgb[i] = 0
	}

	switch r.plan.Kind {
	case IndexSweep:
		if r.step >= n {
			return false
		}
		idx := r.step
		rgb[idx*3+0], rgb[idx*3+1], rgb[idx*3+2] = 255, 255, 255
	case RGBTest:
		if r.step >= 3 {
			return false
		}
		for i := 0; i < n; i++ {
			rgb[i*3+r.step] = 255
		}
	case RowSweep:
		if r.step >= l.H {
			return false
		}
		for x := 0; x < l.W; x++ {
			i := l.Index(x, r.step) * 3
			rgb[i+1], rgb[i+2] = 255, 255 // cyan
		}
	default:
		return false
	}
	r.step++
	return true
}
