package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cursorassist/cursorassist/assist"
	"github.com/cursorassist/cursorassist/assist/internal/testutil"
	"github.com/cursorassist/cursorassist/assist/transform"
)

func TestReplay_DeterministicAcrossIndependentCalls(t *testing.T) {
	cfg := assist.AssistiveConfig{
		Smoothing: assist.SmoothingConfig{
			Strength: 0.6, MinAlpha: 0.25, MaxAlpha: 0.9,
			VelocityLow: 0.5, VelocityHigh: 8.0,
		},
	}
	profile := assist.MotorProfile{ProfileID: "p1"}
	events := testutil.GenerateDeltas(42, 300, -5, 5)

	r1 := Replay(transform.CanonicalStages(), events, cfg, profile, nil)
	r2 := Replay(transform.CanonicalStages(), events, cfg, profile, nil)

	assert.Equal(t, r1.FinalHash, r2.FinalHash)
	assert.Equal(t, r1.FinalX, r2.FinalX)
	assert.Equal(t, r1.FinalY, r2.FinalY)
	assert.Equal(t, uint64(300), r1.StepCount)
}

func TestReplay_DifferentSeedsDivergeHash(t *testing.T) {
	cfg := assist.AssistiveConfig{Smoothing: assist.SmoothingConfig{
		Strength: 0.6, MinAlpha: 0.25, MaxAlpha: 0.9, VelocityLow: 0.5, VelocityHigh: 8.0,
	}}
	profile := assist.MotorProfile{}

	events1 := testutil.GenerateDeltas(1, 50, -5, 5)
	events2 := testutil.GenerateDeltas(2, 50, -5, 5)

	r1 := Replay(transform.CanonicalStages(), events1, cfg, profile, nil)
	r2 := Replay(transform.CanonicalStages(), events2, cfg, profile, nil)

	assert.NotEqual(t, r1.FinalHash, r2.FinalHash)
}

func TestReplay_AccumulatesRawPositionFromDeltasOnly(t *testing.T) {
	cfg := assist.AssistiveConfig{}
	profile := assist.MotorProfile{}
	events := []assist.RawInputEvent{
		{DX: 1, DY: 0},
		{DX: 1, DY: 0},
		{DX: 1, DY: 0},
	}
	r := Replay(transform.CanonicalStages(), events, cfg, profile, nil)
	assert.InDelta(t, float64(3), float64(r.FinalX), 1e-4)
}

func TestReplay_ClampsProvidedConfigOnce(t *testing.T) {
	cfg := assist.AssistiveConfig{DeadzoneRadius: 100}
	profile := assist.MotorProfile{}
	events := []assist.RawInputEvent{{DX: 1, DY: 0}, {DX: 1, DY: 0}}

	// Must not panic and must behave as if clamped: the first event only
	// seeds the deadzone, and with the radius capped at 3.0 the second unit
	// delta is scaled by 1/(1+3) rather than 1/(1+100).
	r := Replay(transform.CanonicalStages(), events, cfg, profile, nil)
	assert.Equal(t, uint64(2), r.StepCount)
	assert.InDelta(t, 1.25, float64(r.FinalX), 1e-4)
}
