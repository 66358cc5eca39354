package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cursorassist/cursorassist/assist"
)

func magnetismCtx(strength, radius, hysteresis, snapRadius float32, targets []assist.TargetInfo) assist.TransformContext {
	cfg := &assist.AssistiveConfig{
		Magnetism: assist.MagnetismConfig{
			Strength:   strength,
			Radius:     radius,
			Hysteresis: hysteresis,
			SnapRadius: snapRadius,
		},
	}
	return assist.TransformContext{Config: cfg, Targets: targets}
}

func oneTarget() []assist.TargetInfo {
	return []assist.TargetInfo{{ID: "a", CenterX: 100, CenterY: 0}}
}

func TestMagnetism_DisabledPassesThrough(t *testing.T) {
	m := NewMagnetism()
	ctx := magnetismCtx(0, 10, 2, 0, oneTarget())
	in := assist.InputSample{X: 95, Y: 0}
	out := m.Apply(in, ctx)
	assert.Equal(t, in, out)
}

func TestMagnetism_NoTargetsPassesThrough(t *testing.T) {
	m := NewMagnetism()
	ctx := magnetismCtx(1, 10, 2, 0, nil)
	in := assist.InputSample{X: 95, Y: 0}
	out := m.Apply(in, ctx)
	assert.Equal(t, in, out)
}

func TestMagnetism_OutsideRadiusPassesThrough(t *testing.T) {
	m := NewMagnetism()
	ctx := magnetismCtx(1, 10, 2, 0, oneTarget())
	in := assist.InputSample{X: 50, Y: 0}
	out := m.Apply(in, ctx)
	assert.Equal(t, in.X, out.X)
}

func TestMagnetism_EngagesAndPullsTowardTargetWithinRadius(t *testing.T) {
	m := NewMagnetism()
	ctx := magnetismCtx(1, 10, 2, 0, oneTarget())

	// dist = 5, within radius 10.
	out := m.Apply(assist.InputSample{X: 95, Y: 0}, ctx)
	// proximity = (1 - 5/10)^2 = 0.25, sEff = 1*0.25 = 0.25
	expected := float32(95) + (100-float32(95))*0.25
	assert.InDelta(t, float64(expected), float64(out.X), 1e-4)
}

func TestMagnetism_HardSnapsWithinSnapRadius(t *testing.T) {
	m := NewMagnetism()
	ctx := magnetismCtx(1, 10, 2, 1, oneTarget())

	out := m.Apply(assist.InputSample{X: 99.5, Y: 0}, ctx)
	assert.Equal(t, float32(100), out.X)
	assert.Equal(t, float32(0), out.Y)
}

func TestMagnetism_HysteresisKeepsLockBeyondRadius(t *testing.T) {
	m := NewMagnetism()
	ctx := magnetismCtx(1, 10, 5, 0, oneTarget())

	// Engage within radius first.
	_ = m.Apply(assist.InputSample{X: 95, Y: 0}, ctx)
	assert.True(t, m.engaged)

	// dist = 13, beyond radius (10) but within radius+hysteresis (15):
	// stays locked. proximity = (1 - 13/10)^2 = 0.09, sEff = 0.09.
	out := m.Apply(assist.InputSample{X: 87, Y: 0}, ctx)
	assert.True(t, m.engaged)
	expected := float32(87) + (100-float32(87))*0.09
	assert.InDelta(t, float64(expected), float64(out.X), 1e-4)
}

func TestMagnetism_DisengagesBeyondHysteresisBand(t *testing.T) {
	m := NewMagnetism()
	ctx := magnetismCtx(1, 10, 5, 0, oneTarget())

	_ = m.Apply(assist.InputSample{X: 95, Y: 0}, ctx)
	assert.True(t, m.engaged)

	// dist = 20, beyond radius+hysteresis (15): disengages.
	out := m.Apply(assist.InputSample{X: 80, Y: 0}, ctx)
	assert.False(t, m.engaged)
	assert.Equal(t, float32(80), out.X)
}

func TestMagnetism_ResetClearsLock(t *testing.T) {
	m := NewMagnetism()
	ctx := magnetismCtx(1, 10, 2, 0, oneTarget())
	_ = m.Apply(assist.InputSample{X: 95, Y: 0}, ctx)
	assert.True(t, m.engaged)

	m.Reset()
	assert.False(t, m.engaged)
	assert.Equal(t, "", m.lockedID)
}

func TestMagnetism_Name(t *testing.T) {
	assert.Equal(t, "magnetism", NewMagnetism().Name())
}
