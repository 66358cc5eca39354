package transform

import (
	"github.com/cursorassist/cursorassist/assist"
	"github.com/cursorassist/cursorassist/assist/internal/mathx"
)

// velocitySaturationVpx is the velocity at which the phase-compensation
// gain is halved, so rapid intentional moves do not overshoot.
const velocitySaturationVpx = float32(15)

// PhaseCompensation offsets the smoothing-induced lag by projecting
// position forward by a velocity-dependent amount, attenuated at high
// velocity. Stateless: Reset is a no-op. See spec §4.4.
type PhaseCompensation struct{}

// NewPhaseCompensation constructs a PhaseCompensation stage.
func NewPhaseCompensation() *PhaseCompensation {
	return &PhaseCompensation{}
}

func (p *PhaseCompensation) Name() string { return "phase_compensation" }

func (p *PhaseCompensation) Reset() {}

func (p *PhaseCompensation) Apply(sample assist.InputSample, ctx assist.TransformContext) assist.InputSample {
	if ctx.Config == nil || ctx.Config.PhaseCompensationGainS <= 0 {
		return sample
	}

	g := ctx.Config.PhaseCompensationGainS
	v := mathx.Hypot32(sample.DX, sample.DY)
	gEff := g / (1 + v/velocitySaturationVpx)

	out := sample
	out.X = sample.X + gEff*sample.DX*assist.DefaultSampleRateHz
	out.Y = sample.Y + gEff*sample.DY*assist.DefaultSampleRateHz
	return out
}
