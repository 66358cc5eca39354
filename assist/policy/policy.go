// Package policy implements the pure MotorProfile -> AssistiveConfig mapper:
// a total, deterministic function with no state, no I/O, and no dependency
// on anything but the profile fields it reads. See spec §4.1.
//
// Two policy-mapper generations have existed historically for this kind of
// system: an amplitude-only v1 and a closed-form v2/v4. This package
// implements only the closed-form v4 variant; it is the canonical policy
// (spec §9, Open Question (c)).
package policy

import (
	"github.com/cursorassist/cursorassist/assist"
	"github.com/cursorassist/cursorassist/assist/internal/mathx"
)

// PolicyVersion identifies the closed-form mapping implemented here.
const PolicyVersion = "v4"

// Map derives an AssistiveConfig from a MotorProfile via the closed-form
// DSP formulas in spec §4.1. Map(p) == Map(p) bit-exactly for any p: every
// value returned is a pure function of profile's fields.
func Map(profile assist.MotorProfile) assist.AssistiveConfig {
	a := profile.TremorAmplitudeVpx
	f := profile.TremorFrequencyHz
	p := profile.PathEfficiency
	o := profile.OvershootRate

	strength := mathx.Clamp01(a / 10)

	minAlpha := minAlphaFor(a, f)
	maxAlpha := mathx.Min32(0.95, 0.85+0.10*p)

	vLow := mathx.Max32(0.3, 0.5+0.1*a)
	vHigh := mathx.Max32(vLow+1, 10-0.5*a)

	adaptiveFrequency := f > 0
	dualPole := a > 4

	deadzone := deadzoneRadiusFor(a, f)

	phaseGain := phaseCompensationGainFor(strength, minAlpha, maxAlpha)

	deficit := mathx.Clamp01(1 - p)
	magRadius := 30 + 120*deficit
	magStrength := mathx.Clamp01(0.5*strength + 0.5*deficit)
	magHysteresis := 0.15 * magRadius
	magSnap := float32(0)
	if a > 3 {
		magSnap = 5
	}

	edgeResistance := mathx.Clamp01(0.3 * o)
	predictionHorizon := mathx.Clamp01(0.05 - 0.01*o)

	intentStrength := float32(0)
	if p > 0.6 {
		intentStrength = mathx.Clamp01(p - 0.4)
	}
	const engageThreshold = float32(0.80)
	disengageThreshold := mathx.Max32(0.50, engageThreshold-0.15)

	return assist.AssistiveConfig{
		Smoothing: assist.SmoothingConfig{
			Strength:          strength,
			MinAlpha:          minAlpha,
			MaxAlpha:          maxAlpha,
			VelocityLow:       vLow,
			VelocityHigh:      vHigh,
			AdaptiveFrequency: adaptiveFrequency,
			DualPole:          dualPole,
		},
		DeadzoneRadius:         deadzone,
		PhaseCompensationGainS: phaseGain,
		Intent: assist.IntentConfig{
			Strength:           intentStrength,
			EngageThreshold:    engageThreshold,
			DisengageThreshold: disengageThreshold,
		},
		Magnetism: assist.MagnetismConfig{
			Radius:     magRadius,
			Strength:   magStrength,
			Hysteresis: magHysteresis,
			SnapRadius: magSnap,
		},
		EdgeResistance:    edgeResistance,
		PredictionHorizon: predictionHorizon,
		SourceProfileID:   profile.ProfileID,
		PolicyVersion:     PolicyVersion,
		SchemaVersion:     "v1",
	}
}

// minAlphaFor derives the -3dB cutoff pole at rest: at half the measured
// tremor frequency when frequency is known, else an amplitude-only fallback.
func minAlphaFor(a, f float32) float32 {
	if f > 0 {
		const twoPi = float32(2 * 3.14159265358979323846)
		return mathx.Clamp(twoPi*0.5/60*f, 0.20, 0.40)
	}
	return mathx.Max32(0.20, 0.35-0.015*a)
}

// deadzoneRadiusFor derives the soft-deadzone radius. The 0.65 exponent
// lies between square-root and linear, relaxing suppression at low
// frequency and tightening it at high frequency.
func deadzoneRadiusFor(a, f float32) float32 {
	if a <= 0.5 {
		return 0
	}
	if f > 0 {
		return mathx.Clamp(0.8*a*mathx.Pow32(f/8, 0.65), 0.2, 3.0)
	}
	return mathx.Clamp(0.8*a, 0.2, 3.0)
}

// phaseCompensationGainFor derives the feed-forward phase gain. Zero when
// strength is below 0.1. Otherwise the gain is attenuated linearly as
// minAlpha rises from 0.30 to 0.40 and is zero from 0.40 up (high-frequency
// tremor, where EMA lag is already small).
func phaseCompensationGainFor(strength, minAlpha, maxAlpha float32) float32 {
	if strength < 0.1 {
		return 0
	}
	alphaBar := (minAlpha + maxAlpha) / 2
	lagS := (1 - alphaBar) / (alphaBar * 60)
	attenuation := 1 - mathx.Clamp01((minAlpha-0.30)/0.10)
	return 0.7 * lagS * attenuation
}
