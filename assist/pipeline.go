package assist

// Pipeline holds a fixed-order sequence of stages and applies them in
// sequence per step. Construction is the only place the stage order is
// decided; nothing downstream reorders stages.
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds a Pipeline from stages in the order they will be
// applied. The canonical order (deadzone -> smoothing -> phase compensation
// -> directional intent -> magnetism) is assembled by the caller (normally
// assist/transform.CanonicalStages); Pipeline itself is order-agnostic so
// tests can exercise stages in isolation or in a reduced sub-chain.
func NewPipeline(stages ...Stage) *Pipeline {
	cp := make([]Stage, len(stages))
	copy(cp, stages)
	return &Pipeline{stages: cp}
}

// Apply chains every stage in order, each stage's output feeding the next
// stage's input.
func (p *Pipeline) Apply(sample InputSample, ctx TransformContext) InputSample {
	out := sample
	for _, s := range p.stages {
		out = s.Apply(out, ctx)
	}
	return out
}

// Reset clears every stage's internal state, in stage order. Order does not
// matter for correctness (stages own disjoint state) but a fixed order keeps
// behavior reproducible if a Reset implementation ever has an observable
// side effect.
func (p *Pipeline) Reset() {
	for _, s := range p.stages {
		s.Reset()
	}
}

// Stages returns the pipeline's stages in application order. Callers must
// not mutate the returned slice.
func (p *Pipeline) Stages() []Stage {
	return p.stages
}
