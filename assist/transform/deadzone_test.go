package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cursorassist/cursorassist/assist"
)

func ctxWithRadius(radius float32) assist.TransformContext {
	cfg := &assist.AssistiveConfig{DeadzoneRadius: radius}
	return assist.TransformContext{Config: cfg}
}

func TestDeadzone_DisabledPassesThrough(t *testing.T) {
	dz := NewDeadzone()
	ctx := ctxWithRadius(0)
	in := assist.InputSample{X: 10, Y: -3}
	out := dz.Apply(in, ctx)
	assert.Equal(t, in.X, out.X)
	assert.Equal(t, in.Y, out.Y)
}

func TestDeadzone_FirstStepAdoptsInput(t *testing.T) {
	dz := NewDeadzone()
	ctx := ctxWithRadius(2)
	in := assist.InputSample{X: 1, Y: 1}
	out := dz.Apply(in, ctx)
	assert.Equal(t, in.X, out.X)
	assert.Equal(t, in.Y, out.Y)
}

func TestDeadzone_SuppressesSmallMotionWithinRadius(t *testing.T) {
	dz := NewDeadzone()
	ctx := ctxWithRadius(2)
	_ = dz.Apply(assist.InputSample{X: 0, Y: 0}, ctx)

	out := dz.Apply(assist.InputSample{X: 0.5, Y: 0, DX: 0.5}, ctx)
	assert.Less(t, out.DX, float32(0.5))
	assert.GreaterOrEqual(t, out.DX, float32(0))
}

func TestDeadzone_PassesLargeMotionThroughMostly(t *testing.T) {
	dz := NewDeadzone()
	ctx := ctxWithRadius(2)
	_ = dz.Apply(assist.InputSample{X: 0, Y: 0}, ctx)

	out := dz.Apply(assist.InputSample{X: 100, Y: 0, DX: 100}, ctx)
	assert.Greater(t, out.X, float32(90))
}

func TestDeadzone_ResetClearsState(t *testing.T) {
	dz := NewDeadzone()
	ctx := ctxWithRadius(2)
	_ = dz.Apply(assist.InputSample{X: 50, Y: 50}, ctx)
	dz.Reset()

	out := dz.Apply(assist.InputSample{X: 1, Y: 1}, ctx)
	assert.Equal(t, float32(1), out.X)
	assert.Equal(t, float32(1), out.Y)
}

func TestDeadzone_Name(t *testing.T) {
	assert.Equal(t, "deadzone", NewDeadzone().Name())
}
