package assist

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// configSchemaJSON encodes the per-field numeric/string constraints of
// spec §6 as a JSON Schema document. gojsonschema enforces the single-field
// bounds; the cross-field constraints it cannot express (min <= max,
// disengage <= engage) are checked separately in crossFieldDiagnostics.
const configSchemaJSON = `{
  "type": "object",
  "properties": {
    "smoothing_strength": {"type": "number", "minimum": 0, "maximum": 1},
    "smoothing_min_alpha": {"type": "number", "minimum": 0.05, "maximum": 1},
    "smoothing_max_alpha": {"type": "number", "minimum": 0.05, "maximum": 1},
    "smoothing_velocity_low": {"type": "number", "minimum": 0},
    "smoothing_velocity_high": {"type": "number", "exclusiveMinimum": 0},
    "deadzone_radius": {"type": "number", "minimum": 0, "maximum": 3.0},
    "phase_compensation_gain_s": {"type": "number", "minimum": 0, "maximum": 0.1},
    "intent_boost_strength": {"type": "number", "minimum": 0, "maximum": 1},
    "intent_coherence_threshold": {"type": "number", "minimum": 0.5, "maximum": 1},
    "intent_disengage_threshold": {"type": "number", "minimum": 0.3, "maximum": 1},
    "magnetism_strength": {"type": "number", "minimum": 0, "maximum": 1},
    "magnetism_radius": {"type": "number", "minimum": 0},
    "magnetism_hysteresis": {"type": "number", "minimum": 0},
    "edge_resistance": {"type": "number", "minimum": 0, "maximum": 1},
    "source_profile_id": {"type": "string", "minLength": 1}
  },
  "required": ["source_profile_id"]
}`

var configSchemaLoader = gojsonschema.NewStringLoader(configSchemaJSON)

// ParseConfigJSON decodes a JSON config document, applies schema-version
// defaults (a missing intent_disengage_threshold in a v1 document defaults
// to 0.65), validates it against configSchemaJSON plus the cross-field
// constraints §6 lists, and returns the resulting config. On any validation
// failure the config is never partially applied: ok is false and diags
// lists every field-scoped diagnostic found.
func ParseConfigJSON(data []byte) (cfg AssistiveConfig, diags []string, ok bool) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return AssistiveConfig{}, []string{fmt.Sprintf("document: invalid JSON: %v", err)}, false
	}

	var dto configDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return AssistiveConfig{}, []string{fmt.Sprintf("document: %v", err)}, false
	}
	dto.applyVersionDefaults()

	documentLoader := gojsonschema.NewGoLoader(raw)
	result, err := gojsonschema.Validate(configSchemaLoader, documentLoader)
	if err != nil {
		return AssistiveConfig{}, []string{fmt.Sprintf("document: schema validation error: %v", err)}, false
	}
	for _, e := range result.Errors() {
		diags = append(diags, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}

	cfg = dto.toConfig()
	diags = append(diags, crossFieldDiagnostics(cfg)...)

	return cfg, diags, len(diags) == 0
}

// Validate checks an already-constructed AssistiveConfig (e.g. one produced
// by the policy mapper or built programmatically) against the same
// constraints ParseConfigJSON enforces on ingest. Returns a list of
// field-scoped diagnostics; empty means valid.
func Validate(cfg AssistiveConfig) []string {
	dto := dtoFromConfig(cfg)
	encoded, err := json.Marshal(dto)
	if err != nil {
		return []string{fmt.Sprintf("document: %v", err)}
	}
	var raw map[string]any
	if err := json.Unmarshal(encoded, &raw); err != nil {
		return []string{fmt.Sprintf("document: %v", err)}
	}

	documentLoader := gojsonschema.NewGoLoader(raw)
	result, err := gojsonschema.Validate(configSchemaLoader, documentLoader)
	if err != nil {
		return []string{fmt.Sprintf("document: schema validation error: %v", err)}
	}

	var diags []string
	for _, e := range result.Errors() {
		diags = append(diags, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	diags = append(diags, crossFieldDiagnostics(cfg)...)
	return diags
}

// crossFieldDiagnostics checks the ordering constraints spec §6 lists that a
// single-field JSON Schema cannot express.
func crossFieldDiagnostics(cfg AssistiveConfig) []string {
	var diags []string
	if cfg.Smoothing.MinAlpha > cfg.Smoothing.MaxAlpha {
		diags = append(diags, "smoothing_min_alpha: must be <= smoothing_max_alpha")
	}
	if cfg.Smoothing.VelocityLow >= cfg.Smoothing.VelocityHigh {
		diags = append(diags, "smoothing_velocity_low: must be < smoothing_velocity_high")
	}
	if cfg.Intent.DisengageThreshold > cfg.Intent.EngageThreshold {
		diags = append(diags, "intent_disengage_threshold: must be <= intent_coherence_threshold")
	}
	if cfg.SourceProfileID == "" {
		diags = append(diags, "source_profile_id: must not be empty")
	}
	return diags
}
