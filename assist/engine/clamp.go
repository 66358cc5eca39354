package engine

import "github.com/cursorassist/cursorassist/assist"

// swapPendingConfig is called once at the start of every frame (spec §4.8:
// "apply any pending config swap (under the clamp rule)"). A config pushed
// through UpdateConfig is never rejected outright; instead every field the
// runtime safety layer bounds is clamped into range here, as defense in
// depth against a value that slipped past upstream (CLI/control-plane)
// validation.
func (e *Engine) swapPendingConfig() {
	pending := e.pendingConfig.Swap(nil)
	if pending == nil {
		return
	}
	clamped := clampConfig(*pending)
	e.activeConfig.Store(&clamped)
}

// clampConfig bounds the subset of AssistiveConfig fields spec §6 lists as
// runtime-clampable, leaving fields the schema already constrains at ingest
// (e.g. thresholds in [0, 1]) untouched here — re-clamping them would mask a
// genuine upstream validation bug instead of merely guarding the hot path.
func clampConfig(cfg assist.AssistiveConfig) assist.AssistiveConfig {
	cfg.Smoothing.MinAlpha = clampF(cfg.Smoothing.MinAlpha, 0.05, 0.98)
	cfg.Smoothing.MaxAlpha = clampF(cfg.Smoothing.MaxAlpha, 0.05, 0.98)
	if cfg.Smoothing.MinAlpha > cfg.Smoothing.MaxAlpha {
		cfg.Smoothing.MinAlpha, cfg.Smoothing.MaxAlpha = cfg.Smoothing.MaxAlpha, cfg.Smoothing.MinAlpha
	}
	cfg.DeadzoneRadius = clampF(cfg.DeadzoneRadius, 0, 3.0)
	cfg.PhaseCompensationGainS = clampF(cfg.PhaseCompensationGainS, 0, 0.1)
	return cfg
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
