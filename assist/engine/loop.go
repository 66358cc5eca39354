package engine

import (
	"time"

	channerics "github.com/niceyeti/channerics/channels"

	"github.com/cursorassist/cursorassist/assist"
)

// maxDeltaPerStep is the default hard clamp on assisted motion injected in a
// single fixed step (spec §4.8 runtime safety layer).
const maxDeltaPerStep = float32(50)

// loop is the single goroutine that owns the pipeline, the stepper and the
// cursor for the engine's lifetime between Enable and Disable/EmergencyStop.
func (e *Engine) loop(done <-chan struct{}) {
	defer e.wg.Done()

	ticks := channerics.NewTicker(done, tickInterval)

	for {
		select {
		case <-done:
			return
		case now := <-ticks:
			e.processFrame(now)
		}
	}
}

// processFrame is one iteration of the realtime main loop (spec §4.8):
// apply any pending config swap under the clamp rule; then, once the
// accumulator holds at least one fixed step, aggregate the queued input and
// run up to DefaultMaxStepsPerFrame fixed steps.
func (e *Engine) processFrame(now time.Time) {
	e.swapPendingConfig()

	cfg := e.activeConfig.Load()
	profile := e.profile.Load()
	if cfg == nil || profile == nil {
		// EmergencyStop dropped the active and pending config; the engine
		// idles until a fresh config is pushed.
		return
	}
	targetsPtr := e.targets.Load()
	var targets []assist.TargetInfo
	if targetsPtr != nil {
		targets = *targetsPtr
	}

	nowNanos := now.UnixNano()
	if !e.loopStarted {
		e.loopStarted = true
		e.lastHostNanos = nowNanos
		return
	}
	elapsedNanos := nowNanos - e.lastHostNanos
	if elapsedNanos < 0 {
		elapsedNanos = 0
	}
	e.lastHostNanos = nowNanos
	e.accumulatorSec += float32(elapsedNanos) / float32(time.Second)

	const deltaTFixed = float32(1) / float32(assist.DefaultSampleRateHz)

	// Queued input stays in the queue until a frame that runs at least one
	// fixed step, so no delta is drained by a zero-step frame and lost.
	if e.accumulatorSec < deltaTFixed {
		return
	}
	aggDX, aggDY, buttonPrimary, buttonSecondary, injectedSeen := e.drainAggregateInput()

	steps := 0
	current := assist.InputSample{
		DX: aggDX, DY: aggDY,
		PrimaryDown:   buttonPrimary,
		SecondaryDown: buttonSecondary,
	}
	// The pipeline transforms the cursor's running position advanced by this
	// frame's aggregated delta: each fixed step advances from where the last
	// one left off.
	e.cursorMu.Lock()
	current.X, current.Y = e.cursor.X+aggDX, e.cursor.Y+aggDY
	e.cursorMu.Unlock()

	for e.accumulatorSec >= deltaTFixed && steps < assist.DefaultMaxStepsPerFrame {
		ctx := assist.TransformContext{
			DeltaT:  deltaTFixed,
			Targets: targets,
			Config:  cfg,
			Profile: profile,
		}
		result := e.stepper.FixedStep(current, ctx)
		e.stepCount.Add(1)
		e.applyStepResult(current, result, injectedSeen)

		// Any further catch-up step this frame starts from the cursor's
		// post-clamp position, not the pipeline's unclamped output: the
		// cursor is the single source of truth for "where the pointer is",
		// and the clamp in applyStepResult may have capped last step's move.
		e.cursorMu.Lock()
		cx, cy := e.cursor.X, e.cursor.Y
		e.cursorMu.Unlock()
		current = assist.InputSample{
			X: cx, Y: cy,
			DX: 0, DY: 0,
			PrimaryDown:   buttonPrimary,
			SecondaryDown: buttonSecondary,
		}
		e.accumulatorSec -= deltaTFixed
		steps++
	}

	if e.accumulatorSec > deltaTFixed {
		e.accumulatorSec = deltaTFixed
		e.overrunCount.Add(1)
	}
}

// applyStepResult clamps the fixed step's motion, updates the cursor, and
// (unless this frame's aggregated input was itself a tagged injection echo)
// enqueues the assisted delta for the injection collaborator and records it
// in the echo guard.
func (e *Engine) applyStepResult(before assist.InputSample, result assist.EngineFrameResult, injectedSeen bool) {
	dx := clampComponent(result.Final.X - before.X)
	dy := clampComponent(result.Final.Y - before.Y)

	e.cursorMu.Lock()
	e.cursor.X += dx
	e.cursor.Y += dy
	e.cursor.VX = dx * assist.DefaultSampleRateHz
	e.cursor.VY = dy * assist.DefaultSampleRateHz
	e.cursor.PrimaryDown = result.Final.PrimaryDown
	e.cursor.SecondaryDown = result.Final.SecondaryDown
	e.cursorMu.Unlock()

	if injectedSeen {
		// This frame's raw input was itself flagged as an echo of a prior
		// injection by the capture collaborator; never re-inject it.
		return
	}

	const enqueueThreshold = float32(1e-3)
	if absDiff(dx, 0) <= enqueueThreshold && absDiff(dy, 0) <= enqueueThreshold {
		return
	}

	at := time.Now()
	e.echo.Record(dx, dy, at)
	select {
	case e.outputCh <- assist.AssistedDelta{DX: dx, DY: dy, StepIndex: result.StepIndex}:
	default:
		e.droppedOutputs.Add(1)
	}
}

func clampComponent(v float32) float32 {
	if v > maxDeltaPerStep {
		return maxDeltaPerStep
	}
	if v < -maxDeltaPerStep {
		return -maxDeltaPerStep
	}
	return v
}

// drainAggregateInput drains every RawInputEvent queued since the last
// frame, aggregating deltas and taking last-event-wins button state. Events
// that are tagged as injected or that the echo guard recognizes as recent
// injections are left out of the aggregate; injectedSeen reports that at
// least one was seen so the caller can suppress re-injecting.
func (e *Engine) drainAggregateInput() (dx, dy float32, primary, secondary, injectedSeen bool) {
	now := time.Now()
	primary, secondary = e.heldPrimary, e.heldSecondary
	for {
		select {
		case ev := <-e.inputCh:
			if ev.Injected || e.echo.WasRecentlyInjected(ev.DX, ev.DY, now) {
				injectedSeen = true
				continue
			}
			dx += ev.DX
			dy += ev.DY
			primary = ev.PrimaryDown
			secondary = ev.SecondaryDown
		default:
			e.heldPrimary, e.heldSecondary = primary, secondary
			return dx, dy, primary, secondary, injectedSeen
		}
	}
}
