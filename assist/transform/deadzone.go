// Package transform implements the five canonical pipeline stages: soft
// deadzone, velocity-adaptive smoothing, phase compensation, directional
// intent boost, and target magnetism. Each stage holds its state by value
// and exclusively owns it; nothing outside a stage's Apply/Reset methods
// touches that state.
package transform

import (
	"github.com/cursorassist/cursorassist/assist"
	"github.com/cursorassist/cursorassist/assist/internal/mathx"
)

// minDeltaMagnitude is the "effectively zero" delta threshold below which
// the soft deadzone treats a step as stationary, avoiding a division by a
// near-zero radius term.
const minDeltaMagnitude = 1e-6

// Deadzone compresses small per-step deltas while passing large ones nearly
// intact, suppressing tremor in the magnitude domain without introducing
// phase lag. See spec §4.2.
type Deadzone struct {
	px, py      float32
	initialized bool
}

// NewDeadzone constructs a Deadzone stage with no prior output position.
func NewDeadzone() *Deadzone {
	return &Deadzone{}
}

func (d *Deadzone) Name() string { return "deadzone" }

func (d *Deadzone) Reset() {
	d.px, d.py = 0, 0
	d.initialized = false
}

func (d *Deadzone) Apply(sample assist.InputSample, ctx assist.TransformContext) assist.InputSample {
	radius := float32(0)
	if ctx.Config != nil {
		radius = ctx.Config.DeadzoneRadius
	}

	if radius <= 0 {
		d.px, d.py = sample.X, sample.Y
		d.initialized = true
		return sample
	}

	if !d.initialized {
		d.px, d.py = sample.X, sample.Y
		d.initialized = true
		return sample
	}

	r := mathx.Hypot32(sample.DX, sample.DY)
	if r < minDeltaMagnitude {
		out := sample
		out.X, out.Y = d.px, d.py
		out.DX, out.DY = 0, 0
		return out
	}

	scale := r / (r + radius)
	outDX := sample.DX * scale
	outDY := sample.DY * scale

	d.px += outDX
	d.py += outDY

	out := sample
	out.X, out.Y = d.px, d.py
	out.DX, out.DY = outDX, outDY
	return out
}
