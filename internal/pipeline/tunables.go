// Package pipeline interprets per-frame gesture labels into drawing
// intent: label stability, the pen toggle, point smoothing and mode
// resolution, all owned by an explicit per-session state object.
package pipeline

// Tunables holds the interpretation parameters for one session.
type Tunables struct {
	// PinchDebounceFrames is how many consecutive pinch-labeled frames
	// must accumulate before the pen toggles. Five frames is roughly half
	// a second at typical tracker rates: latency traded for false-trigger
	// suppression.
	PinchDebounceFrames int

	// SmoothingAlpha is the exponential low-pass coefficient applied to
	// the drawing point. Higher values track faster, lower values damp
	// tracker jitter harder.
	SmoothingAlpha float64
}

// DefaultTunables returns the parameters the pipeline was tuned with.
func DefaultTunables() Tunables {
	return Tunables{
		PinchDebounceFrames: 5,
		SmoothingAlpha:      0.35,
	}
}
