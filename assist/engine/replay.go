package engine

import "github.com/cursorassist/cursorassist/assist"

// ReplayResult is the deterministic outcome of replaying a recorded event
// trace through a fresh pipeline.
type ReplayResult struct {
	FinalHash uint64
	StepCount uint64
	FinalX    float32
	FinalY    float32
	Overruns  uint64
}

// Replay drives a fresh Stepper over events deterministically: one fixed
// step per event, each event's raw position accumulated from its delta. cfg
// is clamped once, under the same clamp rule the live loop uses, and stays
// fixed for the whole replay; no config change is applied mid-replay. It never touches wall-clock time, the input/output queues, or the
// echo guard — those are runtime-layer concerns specific to a live host
// loop, not the deterministic replay contract (spec §4.8's replay API, used
// for cross-host hash verification and regression testing).
func Replay(stages []assist.Stage, events []assist.RawInputEvent, cfg assist.AssistiveConfig, profile assist.MotorProfile, targets []assist.TargetInfo) ReplayResult {
	pipeline := assist.NewPipeline(stages...)
	stepper := assist.NewStepper(pipeline)

	clamped := clampConfig(cfg)
	active := &clamped

	var x, y float32
	var last assist.EngineFrameResult
	for _, ev := range events {
		x += ev.DX
		y += ev.DY
		sample := assist.InputSample{
			X: x, Y: y,
			DX: ev.DX, DY: ev.DY,
			PrimaryDown:   ev.PrimaryDown,
			SecondaryDown: ev.SecondaryDown,
		}
		ctx := assist.TransformContext{
			DeltaT:  float32(1) / float32(assist.DefaultSampleRateHz),
			Targets: targets,
			Config:  active,
			Profile: &profile,
		}
		last = stepper.FixedStep(sample, ctx)
	}

	return ReplayResult{
		FinalHash: stepper.Hash(),
		StepCount: stepper.StepIndex(),
		FinalX:    last.Final.X,
		FinalY:    last.Final.Y,
		Overruns:  stepper.OverrunCount(),
	}
}
