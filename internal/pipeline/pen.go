package pipeline

import "github.com/ayusman/rangoli/internal/classifier"

// Pen is the latch that turns repeated pinch gestures into a persistent
// drawing-enabled flag. It starts up and is never reset by hand loss, so
// the pen survives brief occlusions.
type Pen struct {
	down bool
}

// Update toggles the pen when a pinch run first reaches the debounce
// length and reports whether a toggle happened. A pinch held past the
// threshold fires exactly once; it cannot fire again until the run
// breaks and re-qualifies.
func (p *Pen) Update(stable StabilityState, debounceFrames int) bool {
	if stable.Label == classifier.LabelPinch && stable.Frames == debounceFrames {
		p.down = !p.down
		return true
	}
	return false
}

// IsDown reports whether the pen is currently down.
func (p *Pen) IsDown() bool {
	return p.down
}
