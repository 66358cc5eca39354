package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cursorassist/cursorassist/assist"
)

func intentCtx(strength float32) assist.TransformContext {
	cfg := &assist.AssistiveConfig{
		Intent: assist.IntentConfig{
			Strength:           strength,
			EngageThreshold:    0.80,
			DisengageThreshold: 0.65,
		},
	}
	return assist.TransformContext{Config: cfg}
}

func TestIntentBoost_DisabledPassesThrough(t *testing.T) {
	b := NewIntentBoost()
	ctx := intentCtx(0)
	in := assist.InputSample{X: 1, Y: 0, DX: 1, DY: 0}
	out := b.Apply(in, ctx)
	assert.Equal(t, in, out)
}

func TestIntentBoost_EngagesOnSustainedCoherentMotion(t *testing.T) {
	b := NewIntentBoost()
	ctx := intentCtx(1.0)

	// First call only seeds prevDX/prevDY (b.initialized starts false).
	_ = b.Apply(assist.InputSample{X: 0, Y: 0, DX: 1, DY: 0}, ctx)

	var out assist.InputSample
	for i := 0; i < 20; i++ {
		out = b.Apply(assist.InputSample{X: float32(i), Y: 0, DX: 1, DY: 0}, ctx)
	}
	// Sustained identical-direction motion should push the output ahead of
	// the raw input once engaged.
	assert.Greater(t, out.X, float32(19))
}

func TestIntentBoost_NeverEngagesBelowVelocityFloor(t *testing.T) {
	b := NewIntentBoost()
	ctx := intentCtx(1.0)
	_ = b.Apply(assist.InputSample{X: 0, Y: 0, DX: 1, DY: 0}, ctx)

	var out assist.InputSample
	for i := 0; i < 10; i++ {
		out = b.Apply(assist.InputSample{X: 0, Y: 0, DX: 0.01, DY: 0}, ctx)
	}
	assert.Equal(t, float32(0), out.X)
}

func TestIntentBoost_ResetClearsState(t *testing.T) {
	b := NewIntentBoost()
	ctx := intentCtx(1.0)
	_ = b.Apply(assist.InputSample{X: 0, Y: 0, DX: 1, DY: 0}, ctx)
	for i := 0; i < 10; i++ {
		_ = b.Apply(assist.InputSample{X: float32(i), Y: 0, DX: 1, DY: 0}, ctx)
	}
	b.Reset()

	out := b.Apply(assist.InputSample{X: 0, Y: 0, DX: 1, DY: 0}, ctx)
	assert.Equal(t, float32(0), out.X)
}

func TestIntentBoost_Name(t *testing.T) {
	assert.Equal(t, "intent_boost", NewIntentBoost().Name())
}
