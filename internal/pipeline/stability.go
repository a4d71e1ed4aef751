package pipeline

import "github.com/ayusman/rangoli/internal/classifier"

// StabilityState tracks how long the current label has held. It does not
// smooth the label itself; it only gives downstream consumers a
// trustworthy run length to gate on.
type StabilityState struct {
	// Label is the last observed label, or empty when no hand was
	// present on the most recent frame.
	Label classifier.Label `json:"label"`

	// Frames is the number of consecutive frames Label has held.
	// Zero exactly when Label is empty.
	Frames int `json:"frames"`
}

// StabilityFilter consumes one raw label per frame and maintains a
// run-length counter over it.
type StabilityFilter struct {
	state StabilityState
}

// Update advances the filter with this frame's raw label and returns the
// new state. Repeats of the previous label increment the counter; a new
// label restarts it at 1.
func (f *StabilityFilter) Update(label classifier.Label) StabilityState {
	if label == f.state.Label {
		f.state.Frames++
	} else {
		f.state = StabilityState{Label: label, Frames: 1}
	}
	return f.state
}

// Reset clears the filter for a frame with no hand present.
func (f *StabilityFilter) Reset() StabilityState {
	f.state = StabilityState{}
	return f.state
}

// State returns the current state without advancing the filter.
func (f *StabilityFilter) State() StabilityState {
	return f.state
}
