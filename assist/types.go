package assist

// InputSample is one sampled pointer state, produced per step by the
// Stepper. All numeric fields are float32: this is a compatibility
// requirement for the determinism hash, not a precision choice.
type InputSample struct {
	X, Y          float32 // position, vpx
	DX, DY        float32 // per-step delta, vpx/step
	PrimaryDown   bool
	SecondaryDown bool
	StepIndex     uint64
}

// TargetInfo is a candidate UI target supplied per step by an external
// collaborator (accessibility-tree target discovery is out of scope here;
// targets simply arrive pre-resolved). Snapshot semantics: a TargetInfo is
// copied by value and never mutated by the pipeline.
type TargetInfo struct {
	ID                 string
	CenterX, CenterY   float32
	Width, Height      float32
}

// MotorProfile holds measured user characteristics produced by an external
// calibration/profiling collaborator. Immutable once constructed.
type MotorProfile struct {
	ProfileID          string
	TremorFrequencyHz  float32 // 0 = unmeasured
	TremorAmplitudeVpx float32
	PathEfficiency     float32 // [0, 1]
	OvershootRate      float32 // >= 0

	// Timing metrics: additional measured characteristics the policy mapper
	// does not currently consume, but which the calibration collaborator
	// reports and which a future mapper revision may use.
	MeanReactionTimeMs float32
	MeanDwellTimeMs    float32
}

// SmoothingConfig groups the velocity-adaptive low-pass filter parameters.
type SmoothingConfig struct {
	Strength          float32 // master strength, [0, 1]
	MinAlpha          float32 // pole at rest, [0.05, 1]
	MaxAlpha          float32 // pole at speed, [0.05, 1]
	VelocityLow       float32 // vpx/step
	VelocityHigh      float32 // vpx/step
	AdaptiveFrequency bool    // true iff tremor frequency was measured
	DualPole          bool    // true iff tremor amplitude > 4
}

// IntentConfig groups the directional-intent boost parameters.
type IntentConfig struct {
	Strength           float32 // [0, 1]
	EngageThreshold    float32 // [0.5, 1]
	DisengageThreshold float32 // [0.3, 1], <= EngageThreshold
}

// MagnetismConfig groups the target-magnetism parameters.
type MagnetismConfig struct {
	Radius     float32 // activation radius, vpx
	Strength   float32 // [0, 1]
	Hysteresis float32 // vpx, added to Radius on disengage test
	SnapRadius float32 // vpx; 0 disables hard snap
}

// AssistiveConfig is the full set of pipeline parameters derived from a
// MotorProfile by the policy mapper (assist/policy). An AssistiveConfig
// presented to the pipeline is treated as immutable for the duration of a
// step.
type AssistiveConfig struct {
	Smoothing              SmoothingConfig
	DeadzoneRadius         float32 // vpx, [0, 3.0]
	PhaseCompensationGainS float32 // seconds, [0, 0.1]
	Intent                 IntentConfig
	Magnetism              MagnetismConfig
	EdgeResistance         float32 // [0, 1]; reserved, no canonical stage consumes it
	PredictionHorizon      float32 // [0, 1]; reserved, no stage consumes it

	SourceProfileID string
	PolicyVersion   string
	SchemaVersion   string // config document schema version, e.g. "v1"
}

// TransformContext carries the per-step ambient inputs every stage reads.
// Ephemeral: constructed fresh for each step.
type TransformContext struct {
	StepIndex uint64
	DeltaT    float32 // seconds
	Targets   []TargetInfo
	Config    *AssistiveConfig
	Profile   *MotorProfile
}

// EventKind enumerates the small set of notable per-step occurrences a
// caller may want to observe (e.g. for UI affordances); the pipeline itself
// never branches on these.
type EventKind string

const (
	EventMagnetismEngaged    EventKind = "magnetism_engaged"
	EventMagnetismDisengaged EventKind = "magnetism_disengaged"
	EventMagnetismSnapped    EventKind = "magnetism_snapped"
	EventIntentEngaged       EventKind = "intent_engaged"
	EventIntentDisengaged    EventKind = "intent_disengaged"
)

// Event is a notable per-step occurrence carried in EngineFrameResult.Events.
// Neither the Stepper nor the canonical stages emit events, so Events is
// always empty in results they produce.
type Event struct {
	Kind   EventKind
	Detail string
}

// EngineFrameResult is the per-step output of the Stepper/Engine.
type EngineFrameResult struct {
	StepIndex uint64
	Final     InputSample // transformed output sample
	Raw       InputSample // the sample the pipeline was fed, before transforms
	Events    []Event
	Hash      uint64 // running FNV-1a digest after this step
	Alpha     float32 // wall-clock-mode interpolation alpha in [0, 1]; 1 after an overrun
}

// CursorState is the engine-owned virtual cursor, reset at enable and
// mutated only by the engine thread.
type CursorState struct {
	X, Y          float32
	VX, VY        float32 // vpx/s
	PrimaryDown   bool
	SecondaryDown bool
}

// RawInputEvent is the pipeline's input contract from the host capture
// collaborator: a delta sampled at an arbitrary host wall-clock tick.
type RawInputEvent struct {
	DX, DY        float32
	PrimaryDown   bool
	SecondaryDown bool
	HostTicks     int64 // host monotonic clock ticks when captured
	Injected      bool  // tag attached by the injection side-channel
}

// AssistedDelta is the pipeline's output contract to the host injection
// collaborator: a relative pointer move to be emitted, already clamped.
type AssistedDelta struct {
	DX, DY    float32
	StepIndex uint64
}
