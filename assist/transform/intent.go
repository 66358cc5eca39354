package transform

import (
	"github.com/cursorassist/cursorassist/assist"
	"github.com/cursorassist/cursorassist/assist/internal/mathx"
)

// Constants fixed by spec §4.5, not config-exposed.
const (
	intentEMAPole          = float32(0.15) // beta
	intentBoostFactor      = float32(0.3)  // K
	intentVelocityFloor    = float32(0.1)  // f_v, below which coherence is forced to 0
	intentMinBoostVelocity = float32(0.5)  // v_b
)

// IntentBoost detects sustained intentional motion via cosine coherence of
// successive velocity vectors, low-pass filters the coherence, and advances
// the cursor slightly in the motion direction once engaged. Hysteresis
// between engage/disengage thresholds prevents flicker. See spec §4.5.
type IntentBoost struct {
	prevDX, prevDY float32
	coherenceEMA   float32
	engaged        bool
	initialized    bool
}

// NewIntentBoost constructs an IntentBoost stage with no prior history.
func NewIntentBoost() *IntentBoost {
	return &IntentBoost{}
}

func (b *IntentBoost) Name() string { return "intent_boost" }

func (b *IntentBoost) Reset() {
	b.prevDX, b.prevDY = 0, 0
	b.coherenceEMA = 0
	b.engaged = false
	b.initialized = false
}

func (b *IntentBoost) Apply(sample assist.InputSample, ctx assist.TransformContext) assist.InputSample {
	if ctx.Config == nil || ctx.Config.Intent.Strength <= 0 || !b.initialized {
		b.prevDX, b.prevDY = sample.DX, sample.DY
		b.initialized = true
		return sample
	}

	vCur := mathx.Hypot32(sample.DX, sample.DY)
	vPrev := mathx.Hypot32(b.prevDX, b.prevDY)

	var coherence float32
	if vCur > intentVelocityFloor && vPrev > intentVelocityFloor {
		coherence = (sample.DX*b.prevDX + sample.DY*b.prevDY) / (vCur * vPrev)
	}
	b.coherenceEMA += intentEMAPole * (coherence - b.coherenceEMA)

	b.prevDX, b.prevDY = sample.DX, sample.DY

	cfg := ctx.Config.Intent
	if b.engaged {
		if b.coherenceEMA < cfg.DisengageThreshold {
			b.engaged = false
		}
	} else {
		if b.coherenceEMA > cfg.EngageThreshold {
			b.engaged = true
		}
	}

	if !b.engaged || vCur <= intentMinBoostVelocity {
		return sample
	}

	span := 1 - cfg.EngageThreshold
	if span <= 0 {
		return sample
	}
	ramp := (b.coherenceEMA - cfg.EngageThreshold) / span
	boost := ramp * cfg.Strength * intentBoostFactor
	nx, ny := sample.DX/vCur, sample.DY/vCur

	out := sample
	out.X = sample.X + nx*boost*vCur
	out.Y = sample.Y + ny*boost*vCur
	return out
}
