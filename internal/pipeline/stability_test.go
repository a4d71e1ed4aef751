package pipeline

import (
	"testing"

	"github.com/ayusman/rangoli/internal/classifier"
)

func TestStabilityFilter_CountsRuns(t *testing.T) {
	var f StabilityFilter

	for i := 1; i <= 4; i++ {
		state := f.Update(classifier.LabelPinch)
		if state.Label != classifier.LabelPinch {
			t.Fatalf("frame %d: label = %q, want %q", i, state.Label, classifier.LabelPinch)
		}
		if state.Frames != i {
			t.Fatalf("frame %d: frames = %d, want %d", i, state.Frames, i)
		}
	}

	// A different label restarts the run at 1.
	state := f.Update(classifier.LabelPointing)
	if state.Label != classifier.LabelPointing || state.Frames != 1 {
		t.Errorf("after label change: state = %+v, want {pointing 1}", state)
	}
}

func TestStabilityFilter_Reset(t *testing.T) {
	var f StabilityFilter

	f.Update(classifier.LabelOpenPalm)
	f.Update(classifier.LabelOpenPalm)

	state := f.Reset()
	if state.Label != "" || state.Frames != 0 {
		t.Errorf("Reset() state = %+v, want empty", state)
	}

	// The first frame after a reset starts a fresh run.
	state = f.Update(classifier.LabelOpenPalm)
	if state.Frames != 1 {
		t.Errorf("frames after reset = %d, want 1", state.Frames)
	}
}

func TestStabilityFilter_IdleCountsLikeAnyLabel(t *testing.T) {
	var f StabilityFilter

	f.Update(classifier.LabelIdle)
	state := f.Update(classifier.LabelIdle)
	if state.Label != classifier.LabelIdle || state.Frames != 2 {
		t.Errorf("state = %+v, want {idle 2}", state)
	}
}
