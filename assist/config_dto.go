package assist

// configDTO is the wire shape of an AssistiveConfig document, keyed exactly
// as spec §6 names the JSON fields. Field validation constraints live in
// configSchemaJSON (config_validate.go); this struct only shapes the
// encoding/decoding.
type configDTO struct {
	SmoothingStrength          *float32 `json:"smoothing_strength"`
	SmoothingMinAlpha          *float32 `json:"smoothing_min_alpha"`
	SmoothingMaxAlpha          *float32 `json:"smoothing_max_alpha"`
	SmoothingVelocityLow       *float32 `json:"smoothing_velocity_low"`
	SmoothingVelocityHigh      *float32 `json:"smoothing_velocity_high"`
	SmoothingAdaptiveFrequency bool     `json:"smoothing_adaptive_frequency"`
	SmoothingDualPole          bool     `json:"smoothing_dual_pole"`

	DeadzoneRadius float32 `json:"deadzone_radius"`

	PhaseCompensationGainS float32 `json:"phase_compensation_gain_s"`

	IntentBoostStrength      float32  `json:"intent_boost_strength"`
	IntentCoherenceThreshold *float32 `json:"intent_coherence_threshold"`
	IntentDisengageThreshold *float32 `json:"intent_disengage_threshold"`

	MagnetismStrength   float32 `json:"magnetism_strength"`
	MagnetismRadius     float32 `json:"magnetism_radius"`
	MagnetismHysteresis float32 `json:"magnetism_hysteresis"`
	MagnetismSnapRadius float32 `json:"magnetism_snap_radius"`

	EdgeResistance    float32 `json:"edge_resistance"`
	PredictionHorizon float32 `json:"prediction_horizon"`

	SourceProfileID string `json:"source_profile_id"`
	PolicyVersion   string `json:"policy_version"`
	SchemaVersion   string `json:"schema_version"`
}

// defaultIntentDisengageThreshold is the v1-schema default applied when a
// document omits intent_disengage_threshold entirely.
const defaultIntentDisengageThreshold = float32(0.65)

func (dto *configDTO) applyVersionDefaults() {
	if dto.SchemaVersion == "" {
		dto.SchemaVersion = "v1"
	}
	if dto.SchemaVersion == "v1" && dto.IntentDisengageThreshold == nil {
		v := defaultIntentDisengageThreshold
		dto.IntentDisengageThreshold = &v
	}
	if dto.SmoothingMinAlpha == nil {
		v := float32(0.25)
		dto.SmoothingMinAlpha = &v
	}
	if dto.SmoothingMaxAlpha == nil {
		v := float32(0.9)
		dto.SmoothingMaxAlpha = &v
	}
	if dto.SmoothingVelocityLow == nil {
		v := float32(0.5)
		dto.SmoothingVelocityLow = &v
	}
	if dto.SmoothingVelocityHigh == nil {
		v := float32(8.0)
		dto.SmoothingVelocityHigh = &v
	}
	if dto.SmoothingStrength == nil {
		v := float32(0)
		dto.SmoothingStrength = &v
	}
	if dto.IntentCoherenceThreshold == nil {
		v := float32(0.80)
		dto.IntentCoherenceThreshold = &v
	}
}

func (dto *configDTO) toConfig() AssistiveConfig {
	return AssistiveConfig{
		Smoothing: SmoothingConfig{
			Strength:          *dto.SmoothingStrength,
			MinAlpha:          *dto.SmoothingMinAlpha,
			MaxAlpha:          *dto.SmoothingMaxAlpha,
			VelocityLow:       *dto.SmoothingVelocityLow,
			VelocityHigh:      *dto.SmoothingVelocityHigh,
			AdaptiveFrequency: dto.SmoothingAdaptiveFrequency,
			DualPole:          dto.SmoothingDualPole,
		},
		DeadzoneRadius:         dto.DeadzoneRadius,
		PhaseCompensationGainS: dto.PhaseCompensationGainS,
		Intent: IntentConfig{
			Strength:           dto.IntentBoostStrength,
			EngageThreshold:    *dto.IntentCoherenceThreshold,
			DisengageThreshold: *dto.IntentDisengageThreshold,
		},
		Magnetism: MagnetismConfig{
			Radius:     dto.MagnetismRadius,
			Strength:   dto.MagnetismStrength,
			Hysteresis: dto.MagnetismHysteresis,
			SnapRadius: dto.MagnetismSnapRadius,
		},
		EdgeResistance:    dto.EdgeResistance,
		PredictionHorizon: dto.PredictionHorizon,
		SourceProfileID:   dto.SourceProfileID,
		PolicyVersion:     dto.PolicyVersion,
		SchemaVersion:     dto.SchemaVersion,
	}
}

func dtoFromConfig(cfg AssistiveConfig) configDTO {
	minAlpha, maxAlpha := cfg.Smoothing.MinAlpha, cfg.Smoothing.MaxAlpha
	vLow, vHigh := cfg.Smoothing.VelocityLow, cfg.Smoothing.VelocityHigh
	strength := cfg.Smoothing.Strength
	engage, disengage := cfg.Intent.EngageThreshold, cfg.Intent.DisengageThreshold
	return configDTO{
		SmoothingStrength:          &strength,
		SmoothingMinAlpha:          &minAlpha,
		SmoothingMaxAlpha:          &maxAlpha,
		SmoothingVelocityLow:       &vLow,
		SmoothingVelocityHigh:      &vHigh,
		SmoothingAdaptiveFrequency: cfg.Smoothing.AdaptiveFrequency,
		SmoothingDualPole:          cfg.Smoothing.DualPole,
		DeadzoneRadius:             cfg.DeadzoneRadius,
		PhaseCompensationGainS:     cfg.PhaseCompensationGainS,
		IntentBoostStrength:        cfg.Intent.Strength,
		IntentCoherenceThreshold:   &engage,
		IntentDisengageThreshold:   &disengage,
		MagnetismStrength:          cfg.Magnetism.Strength,
		MagnetismRadius:            cfg.Magnetism.Radius,
		MagnetismHysteresis:        cfg.Magnetism.Hysteresis,
		MagnetismSnapRadius:        cfg.Magnetism.SnapRadius,
		EdgeResistance:             cfg.EdgeResistance,
		PredictionHorizon:          cfg.PredictionHorizon,
		SourceProfileID:            cfg.SourceProfileID,
		PolicyVersion:              cfg.PolicyVersion,
		SchemaVersion:              cfg.SchemaVersion,
	}
}
