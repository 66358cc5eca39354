package transform

import "github.com/cursorassist/cursorassist/assist"

// CanonicalStages returns fresh instances of the five stages in the
// canonical pipeline order: deadzone, smoothing, phase compensation,
// directional intent, magnetism. This is the only place the order is
// decided for production use; assist.NewPipeline itself is order-agnostic.
func CanonicalStages() []assist.Stage {
	return []assist.Stage{
		NewDeadzone(),
		NewSmoothing(),
		NewPhaseCompensation(),
		NewIntentBoost(),
		NewMagnetism(),
	}
}
