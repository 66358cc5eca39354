package transform

import (
	"github.com/cursorassist/cursorassist/assist"
	"github.com/cursorassist/cursorassist/assist/internal/mathx"
)

// alphaBoundLow and alphaBoundHigh are the valid range for any alpha field
// (strategy and resolved pole); a config field outside this range is
// replaced by its documented default rather than propagated.
const (
	alphaBoundLow  = float32(0.05)
	alphaBoundHigh = float32(1.0)

	defaultMinAlpha     = float32(0.25)
	defaultMaxAlpha     = float32(0.9)
	defaultVelocityLow  = float32(0.5)
	defaultVelocityHigh = float32(8.0)
)

// Smoothing is a velocity-adaptive single-pole IIR low-pass filter: the pole
// adapts to instantaneous velocity, heavy at tremor speeds and near
// pass-through at intentional speeds. See spec §4.3.
type Smoothing struct {
	sx, sy      float32
	initialized bool
}

// NewSmoothing constructs a Smoothing stage with no prior smoothed position.
func NewSmoothing() *Smoothing {
	return &Smoothing{}
}

func (s *Smoothing) Name() string { return "smoothing" }

func (s *Smoothing) Reset() {
	s.sx, s.sy = 0, 0
	s.initialized = false
}

func (s *Smoothing) Apply(sample assist.InputSample, ctx assist.TransformContext) assist.InputSample {
	if ctx.Config == nil || ctx.Config.Smoothing.Strength <= 0 {
		s.sx, s.sy = sample.X, sample.Y
		s.initialized = true
		return sample
	}

	if !s.initialized {
		s.sx, s.sy = sample.X, sample.Y
		s.initialized = true
		return sample
	}

	cfg := ctx.Config.Smoothing
	minAlpha := resolveAlpha(cfg.MinAlpha, defaultMinAlpha)
	maxAlpha := resolveAlpha(cfg.MaxAlpha, defaultMaxAlpha)
	if minAlpha > maxAlpha {
		minAlpha, maxAlpha = defaultMinAlpha, defaultMaxAlpha
	}
	vLow := cfg.VelocityLow
	vHigh := cfg.VelocityHigh
	if vLow < 0 || vHigh <= 0 || vLow >= vHigh {
		vLow, vHigh = defaultVelocityLow, defaultVelocityHigh
	}

	v := mathx.Hypot32(sample.DX, sample.DY)

	var alphaBase float32
	switch {
	case v <= vLow:
		alphaBase = minAlpha
	case v >= vHigh:
		alphaBase = maxAlpha
	default:
		t := (v - vLow) / (vHigh - vLow)
		smooth := mathx.Smoothstep(t)
		alphaBase = minAlpha + (maxAlpha-minAlpha)*smooth
	}

	strength := mathx.Clamp01(cfg.Strength)
	alpha := 1 + strength*(alphaBase-1)
	alpha = mathx.Clamp(alpha, alphaBoundLow, alphaBoundHigh)

	s.sx += alpha * (sample.X - s.sx)
	s.sy += alpha * (sample.Y - s.sy)

	out := sample
	out.X, out.Y = s.sx, s.sy
	return out
}

// resolveAlpha substitutes def when v falls outside [alphaBoundLow,
// alphaBoundHigh].
func resolveAlpha(v, def float32) float32 {
	if v < alphaBoundLow || v > alphaBoundHigh {
		return def
	}
	return v
}
