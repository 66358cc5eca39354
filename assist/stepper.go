package assist

import (
	"hash"
	"hash/fnv"
	"math"
)

// DefaultSampleRateHz is the fixed sample rate the whole pipeline is
// specified against. Every fixed step advances simulated time by
// 1/DefaultSampleRateHz seconds, regardless of wall clock.
const DefaultSampleRateHz = 60

// DefaultMaxStepsPerFrame bounds the number of fixed steps a single call to
// Step may perform, preventing an unbounded catch-up burst when the host
// stalls ("spiral of death").
const DefaultMaxStepsPerFrame = 8

// deltaTFixed is 1/DefaultSampleRateHz in seconds.
const deltaTFixed = float32(1) / float32(DefaultSampleRateHz)

// Stepper wraps a Pipeline, owns the running step counter and the
// FNV-1a rolling hash of every transformed sample, and exposes both a
// fixed-step entry point (for replay/benchmark) and a wall-clock
// accumulator entry point (for the live engine).
type Stepper struct {
	pipeline *Pipeline

	stepIndex uint64
	hash      hash.Hash64

	// Wall-clock accumulator state.
	lastHostTicks  int64
	accumulatorSec float32
	overrunCount   uint64
	started        bool
	lastResult     EngineFrameResult
}

// NewStepper wraps pipeline in a fresh Stepper with the hash initialized to
// the FNV-1a 64-bit offset basis.
func NewStepper(pipeline *Pipeline) *Stepper {
	s := &Stepper{pipeline: pipeline}
	s.hash = fnv.New64a()
	return s
}

// StepIndex returns the number of fixed steps performed so far.
func (s *Stepper) StepIndex() uint64 { return s.stepIndex }

// Hash returns the current running FNV-1a digest.
func (s *Stepper) Hash() uint64 { return s.hash.Sum64() }

// OverrunCount returns the number of wall-clock frames in which the
// accumulator exceeded one fixed step's worth of backlog after the
// catch-up loop ran.
func (s *Stepper) OverrunCount() uint64 { return s.overrunCount }

// Reset returns the step index to 0, the hash to the FNV-1a offset basis,
// resets the pipeline, and clears the wall-clock accumulator state.
func (s *Stepper) Reset() {
	s.pipeline.Reset()
	s.stepIndex = 0
	s.hash = fnv.New64a()
	s.lastHostTicks = 0
	s.accumulatorSec = 0
	s.overrunCount = 0
	s.started = false
	s.lastResult = EngineFrameResult{}
}

// FixedStep applies the pipeline once, folds the output sample into the
// running hash, increments the step index, and returns the frame result.
// This is the entry point replay and benchmark tooling drives directly, one
// call per fixed step.
func (s *Stepper) FixedStep(sample InputSample, ctx TransformContext) EngineFrameResult {
	out := s.pipeline.Apply(sample, ctx)
	s.foldHash(out)
	result := EngineFrameResult{
		StepIndex: s.stepIndex,
		Final:     out,
		Raw:       sample,
		Hash:      s.hash.Sum64(),
	}
	s.stepIndex++
	s.lastResult = result
	return result
}

// foldHash updates the running hash over (x, y, primary, secondary) of the
// transformed sample: each float as its 4-byte little-endian IEEE-754
// single-precision encoding, then one byte per button (1 or 0).
func (s *Stepper) foldHash(sample InputSample) {
	var buf [10]byte
	putFloat32LE(buf[0:4], sample.X)
	putFloat32LE(buf[4:8], sample.Y)
	buf[8] = boolByte(sample.PrimaryDown)
	buf[9] = boolByte(sample.SecondaryDown)
	// Write never returns an error for hash/fnv's Hash64 implementation.
	_, _ = s.hash.Write(buf[:])
}

func putFloat32LE(dst []byte, v float32) {
	bits := math.Float32bits(v)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Step is the variable-wall-clock entry point for a live runtime: it
// consumes a raw input sample plus host-reported elapsed time and emits
// zero or more fixed steps, capped at maxStepsPerFrame.
//
// On the very first call (no prior host tick recorded), Step adopts
// hostNowTicks as the baseline and returns a pass-through result with zero
// hash contribution — there is no elapsed time to convert into steps yet.
func (s *Stepper) Step(raw InputSample, targets []TargetInfo, cfg *AssistiveConfig, profile *MotorProfile, hostNowTicks int64, ticksPerSecond int64, maxStepsPerFrame int) EngineFrameResult {
	if !s.started {
		s.started = true
		s.lastHostTicks = hostNowTicks
		result := EngineFrameResult{
			StepIndex: s.stepIndex,
			Final:     raw,
			Raw:       raw,
			Hash:      s.hash.Sum64(),
			Alpha:     0,
		}
		s.lastResult = result
		return result
	}

	elapsedTicks := hostNowTicks - s.lastHostTicks
	if elapsedTicks < 0 {
		elapsedTicks = 0
	}
	var elapsedSec float32
	if ticksPerSecond > 0 {
		elapsedSec = float32(elapsedTicks) / float32(ticksPerSecond)
	}
	s.lastHostTicks = hostNowTicks
	s.accumulatorSec += elapsedSec

	// Seed from the last transformed sample (not the incoming raw one) so a
	// zero-step call — the common case, since Step is polled faster than the
	// fixed-step rate — still reports the last real transform output rather
	// than disguising raw input as the transformed result.
	last := s.lastResult
	last.Raw = raw

	// Only the first fixed step of a frame carries the caller's aggregated
	// delta; catch-up steps within the same call replay zero motion at the
	// unchanged raw position, since no further real input arrived within
	// this wall-clock frame (the engine's frame aggregation contract,
	// assist/engine). The raw x/y therefore stays pinned to the value the
	// caller supplied — it must NOT track the transformed output, or a
	// host stall would feed the pipeline's own assisted motion back in as
	// if it were raw input.
	steps := 0
	current := raw
	for s.accumulatorSec >= deltaTFixed && steps < maxStepsPerFrame {
		ctx := TransformContext{
			StepIndex: s.stepIndex,
			DeltaT:    deltaTFixed,
			Targets:   targets,
			Config:    cfg,
			Profile:   profile,
		}
		last = s.FixedStep(current, ctx)
		current = InputSample{
			X: raw.X, Y: raw.Y,
			DX: 0, DY: 0,
			PrimaryDown:   raw.PrimaryDown,
			SecondaryDown: raw.SecondaryDown,
			StepIndex:     last.StepIndex + 1,
		}
		s.accumulatorSec -= deltaTFixed
		steps++
	}

	if s.accumulatorSec > deltaTFixed {
		s.accumulatorSec = deltaTFixed
		s.overrunCount++
	}

	last.Alpha = s.accumulatorSec / deltaTFixed
	return last
}
