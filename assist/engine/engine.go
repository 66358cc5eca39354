// Package engine is the real-time runtime layer (spec §4.8): it drives a
// Stepper on a fixed cadence against live wall-clock host input, owns the
// virtual cursor, guards against injected-input echo, and exposes a hot-swap
// path for configuration and profile updates from any goroutine.
//
// Everything in this package is safe to call concurrently. While the loop
// started by Enable runs, it is the only goroutine that mutates the
// pipeline, the stepper, or the cursor; Enable and EmergencyStop reset that
// state only while no loop is running. Other goroutines read the cursor
// under a mutex and communicate with the loop through atomics and channels.
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"github.com/sirupsen/logrus"

	"github.com/cursorassist/cursorassist/assist"
)

// inputQueueCapacity and outputQueueCapacity size the MPSC input queue and
// the SPSC injection queue. Both are non-blocking: a full queue drops the
// newest item and counts the drop, rather than ever stalling a producer.
const (
	inputQueueCapacity  = 256
	outputQueueCapacity = 256
)

// tickInterval is the host-loop polling cadence. It is deliberately finer
// than deltaTFixed (spec DefaultSampleRateHz = 60, i.e. ~16.7ms) so the
// accumulator's fixed-step cadence is the limiting clock, not this ticker.
const tickInterval = time.Millisecond

// Engine is the live runtime: one instance drives one cursor.
type Engine struct {
	log *logrus.Entry

	pipeline *assist.Pipeline
	stepper  *assist.Stepper

	activeConfig  atomic.Pointer[assist.AssistiveConfig]
	pendingConfig atomic.Pointer[assist.AssistiveConfig]
	profile       atomic.Pointer[assist.MotorProfile]
	targets       atomic.Pointer[[]assist.TargetInfo]

	cursorMu sync.Mutex
	cursor   assist.CursorState

	echo *EchoGuard

	inputCh  chan assist.RawInputEvent
	outputCh chan assist.AssistedDelta

	droppedInputs  atomic.Uint64
	droppedOutputs atomic.Uint64
	overrunCount   atomic.Uint64
	stepCount      atomic.Uint64

	// Wall-clock accumulator and held button state, owned exclusively by the
	// loop goroutine.
	accumulatorSec float32
	lastHostNanos  int64
	loopStarted    bool
	heldPrimary    bool
	heldSecondary  bool

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// New constructs a disabled Engine wrapping a pipeline built from stages
// (normally transform.CanonicalStages()), seeded with the given initial
// config and profile.
func New(stages []assist.Stage, cfg assist.AssistiveConfig, profile assist.MotorProfile, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	e := &Engine{
		log:      log.WithField("component", "assist.engine"),
		pipeline: assist.NewPipeline(stages...),
		echo:     NewEchoGuard(),
		inputCh:  make(chan assist.RawInputEvent, inputQueueCapacity),
		outputCh: make(chan assist.AssistedDelta, outputQueueCapacity),
	}
	e.stepper = assist.NewStepper(e.pipeline)
	e.activeConfig.Store(&cfg)
	e.profile.Store(&profile)
	empty := []assist.TargetInfo{}
	e.targets.Store(&empty)
	return e
}

// Enable resets the pipeline, stepper and cursor, then starts the main loop
// goroutine. Enable on an already-running Engine is a no-op.
func (e *Engine) Enable() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	e.stepper.Reset()
	e.cursorMu.Lock()
	e.cursor = assist.CursorState{}
	e.cursorMu.Unlock()
	e.echo.Clear()
	e.accumulatorSec = 0
	e.lastHostNanos = 0
	e.loopStarted = false
	e.heldPrimary = false
	e.heldSecondary = false

	e.done = make(chan struct{})
	e.wg.Add(1)
	go e.loop(e.done)
	e.log.Info("engine enabled")
}

// Disable stops the main loop after its current tick and leaves cursor and
// config state untouched, so a subsequent Enable resumes cleanly.
func (e *Engine) Disable() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	close(e.done)
	e.wg.Wait()
	e.log.Info("engine disabled")
}

// EmergencyStop is the panic-button path (spec §4.8): callable from any
// goroutine, at any time, including while the loop is mid-frame. It halts
// the loop, drains both queues, resets the pipeline and cursor, clears the
// echo guard, and drops both the active and pending config so the engine
// cannot resume motion until a fresh config is pushed.
func (e *Engine) EmergencyStop() {
	wasRunning := e.running.CompareAndSwap(true, false)
	if wasRunning {
		close(e.done)
		e.wg.Wait()
	}

	e.drainInputs()
	e.drainOutputs()
	e.pipeline.Reset()
	e.stepper.Reset()
	e.cursorMu.Lock()
	e.cursor = assist.CursorState{}
	e.cursorMu.Unlock()
	e.echo.Clear()
	e.activeConfig.Store(nil)
	e.pendingConfig.Store(nil)
	e.log.Warn("emergency stop")
}

func (e *Engine) drainInputs() {
	for {
		select {
		case <-e.inputCh:
		default:
			return
		}
	}
}

func (e *Engine) drainOutputs() {
	for {
		select {
		case <-e.outputCh:
		default:
			return
		}
	}
}

// UpdateConfig publishes a new pending config via a single atomic store. The
// runtime never rejects a pushed config outright; it is clamped into range
// at the next frame boundary (clamp.go) as defense-in-depth against an
// out-of-range document slipping past upstream validation.
func (e *Engine) UpdateConfig(cfg assist.AssistiveConfig) {
	e.pendingConfig.Store(&cfg)
}

// UpdateProfile publishes a new MotorProfile for stages that read it
// (currently none of the canonical five do directly; it is threaded through
// TransformContext for forward compatibility and diagnostic surfacing).
func (e *Engine) UpdateProfile(profile assist.MotorProfile) {
	e.profile.Store(&profile)
}

// UpdateTargets replaces the candidate target list the Magnetism stage
// reads each frame. Safe to call from any goroutine; takes effect on the
// next processed frame.
func (e *Engine) UpdateTargets(targets []assist.TargetInfo) {
	cp := append([]assist.TargetInfo(nil), targets...)
	e.targets.Store(&cp)
}

// PushInput enqueues a raw capture-side event. Non-blocking: if the input
// queue is full the event is dropped and DroppedInputs increments, rather
// than ever stalling the capture hook.
func (e *Engine) PushInput(ev assist.RawInputEvent) {
	select {
	case e.inputCh <- ev:
	default:
		e.droppedInputs.Add(1)
	}
}

// Outputs returns a channel of assisted deltas for the injection
// collaborator to consume, wrapped with channerics.OrDone so ranging over it
// terminates cleanly once the caller closes done rather than blocking
// forever. Disabling the engine does not close the returned channel.
func (e *Engine) Outputs(done <-chan struct{}) <-chan assist.AssistedDelta {
	return channerics.OrDone(done, e.outputCh)
}

// Cursor returns a snapshot of the current virtual cursor state.
func (e *Engine) Cursor() assist.CursorState {
	e.cursorMu.Lock()
	defer e.cursorMu.Unlock()
	return e.cursor
}

// Counters is the set of runtime health counters exposed to the control
// plane and to metrics scraping.
type Counters struct {
	DroppedInputs  uint64
	DroppedOutputs uint64
	OverrunCount   uint64
	StepCount      uint64
}

// Counters returns a snapshot of the runtime health counters.
func (e *Engine) Counters() Counters {
	return Counters{
		DroppedInputs:  e.droppedInputs.Load(),
		DroppedOutputs: e.droppedOutputs.Load(),
		OverrunCount:   e.overrunCount.Load(),
		StepCount:      e.stepCount.Load(),
	}
}

// Running reports whether the main loop is currently active.
func (e *Engine) Running() bool { return e.running.Load() }
