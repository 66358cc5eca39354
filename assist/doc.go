// Package assist provides the core signal-processing pipeline for assistive
// cursor control: a chain of stateful transform stages that turns raw pointer
// deltas into stabilized cursor motion, driven at a fixed sample rate by a
// deterministic stepper.
//
// # Reading Guide
//
// Start with these files to understand the pipeline kernel:
//   - types.go: value types shared across the pipeline (InputSample, TargetInfo,
//     MotorProfile, AssistiveConfig, TransformContext, EngineFrameResult)
//   - stage.go: the Stage interface every transform implements
//   - pipeline.go: ordered composition of stages
//   - stepper.go: the fixed-step/wall-clock driver and the deterministic hash
//
// # Architecture
//
// This package defines the shared value types and the Stage/Pipeline/Stepper
// contracts; concrete implementations live in sub-packages:
//   - assist/transform/: the five canonical stage implementations
//   - assist/policy/: the pure MotorProfile -> AssistiveConfig mapper
//   - assist/engine/: the real-time runtime layer (queues, echo guard, hot-swap)
//   - assist/configwatch/: optional file-based config hot-reload
//   - assist/controlplane/: optional remote control surface
//   - assist/tracefmt/: line-delimited JSON trace record shapes
//
// Nothing in this package or assist/transform reads wall-clock time, touches
// a system RNG, or allocates in a way that depends on host scheduling —
// determinism across hosts is the whole point of the stepper's hash.
package assist
