package transform

import (
	"github.com/cursorassist/cursorassist/assist"
	"github.com/cursorassist/cursorassist/assist/internal/mathx"
)

// Magnetism attracts the cursor toward the center of the nearest target
// within an activation radius, snapping hard when very close. Hysteresis
// prevents disengage flicker at the radius boundary. See spec §4.6.
type Magnetism struct {
	engaged  bool
	lockedID string
}

// NewMagnetism constructs a Magnetism stage with no locked target.
func NewMagnetism() *Magnetism {
	return &Magnetism{}
}

func (m *Magnetism) Name() string { return "magnetism" }

func (m *Magnetism) Reset() {
	m.engaged = false
	m.lockedID = ""
}

func (m *Magnetism) Apply(sample assist.InputSample, ctx assist.TransformContext) assist.InputSample {
	if ctx.Config == nil || ctx.Config.Magnetism.Strength <= 0 || ctx.Config.Magnetism.Radius <= 0 || len(ctx.Targets) == 0 {
		m.engaged = false
		m.lockedID = ""
		return sample
	}

	cfg := ctx.Config.Magnetism

	nearest, dist, found := nearestTarget(ctx.Targets, sample.X, sample.Y)
	if !found {
		m.engaged = false
		m.lockedID = ""
		return sample
	}

	if m.engaged && nearest.ID == m.lockedID {
		if dist > cfg.Radius+cfg.Hysteresis {
			m.engaged = false
			m.lockedID = ""
		}
	} else {
		if dist <= cfg.Radius {
			m.engaged = true
			m.lockedID = nearest.ID
		} else {
			m.engaged = false
		}
	}

	if !m.engaged {
		return sample
	}

	if cfg.SnapRadius > 0 && dist <= cfg.SnapRadius {
		out := sample
		out.X, out.Y = nearest.CenterX, nearest.CenterY
		return out
	}

	proximity := 1 - dist/cfg.Radius
	proximity *= proximity
	sEff := cfg.Strength * proximity

	out := sample
	out.X = sample.X + (nearest.CenterX-sample.X)*sEff
	out.Y = sample.Y + (nearest.CenterY-sample.Y)*sEff
	return out
}

// nearestTarget returns the target in targets whose center is closest to
// (x, y), its distance, and whether any target was found.
func nearestTarget(targets []assist.TargetInfo, x, y float32) (assist.TargetInfo, float32, bool) {
	var best assist.TargetInfo
	bestDist := float32(0)
	found := false
	for _, t := range targets {
		d := mathx.Hypot32(t.CenterX-x, t.CenterY-y)
		if !found || d < bestDist {
			best, bestDist, found = t, d, true
		}
	}
	return best, bestDist, found
}
