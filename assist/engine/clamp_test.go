package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cursorassist/cursorassist/assist"
)

func TestClampConfig_LeavesInRangeValuesUntouched(t *testing.T) {
	cfg := assist.AssistiveConfig{
		Smoothing:              assist.SmoothingConfig{MinAlpha: 0.3, MaxAlpha: 0.8},
		DeadzoneRadius:         1.5,
		PhaseCompensationGainS: 0.05,
	}
	out := clampConfig(cfg)
	assert.Equal(t, cfg, out)
}

func TestClampConfig_ClampsOutOfRangeAlphaBounds(t *testing.T) {
	cfg := assist.AssistiveConfig{
		Smoothing: assist.SmoothingConfig{MinAlpha: -1, MaxAlpha: 5},
	}
	out := clampConfig(cfg)
	assert.Equal(t, float32(0.05), out.Smoothing.MinAlpha)
	assert.Equal(t, float32(0.98), out.Smoothing.MaxAlpha)
}

func TestClampConfig_SwapsInvertedAlphaBounds(t *testing.T) {
	cfg := assist.AssistiveConfig{
		Smoothing: assist.SmoothingConfig{MinAlpha: 0.9, MaxAlpha: 0.2},
	}
	out := clampConfig(cfg)
	assert.LessOrEqual(t, out.Smoothing.MinAlpha, out.Smoothing.MaxAlpha)
	assert.Equal(t, float32(0.2), out.Smoothing.MinAlpha)
	assert.Equal(t, float32(0.9), out.Smoothing.MaxAlpha)
}

func TestClampConfig_ClampsDeadzoneRadius(t *testing.T) {
	cfg := assist.AssistiveConfig{DeadzoneRadius: 10}
	out := clampConfig(cfg)
	assert.Equal(t, float32(3.0), out.DeadzoneRadius)

	cfg.DeadzoneRadius = -2
	out = clampConfig(cfg)
	assert.Equal(t, float32(0), out.DeadzoneRadius)
}

func TestClampConfig_ClampsPhaseCompensationGain(t *testing.T) {
	cfg := assist.AssistiveConfig{PhaseCompensationGainS: 1}
	out := clampConfig(cfg)
	assert.Equal(t, float32(0.1), out.PhaseCompensationGainS)
}
