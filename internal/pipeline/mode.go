package pipeline

import "github.com/ayusman/rangoli/internal/classifier"

// Mode is the active interaction mode for one frame. It is derived from
// the raw classification and the pen state, never stored independently.
type Mode string

const (
	// ModeIdle draws nothing.
	ModeIdle Mode = "idle"
	// ModeDrawing paints new strokes.
	ModeDrawing Mode = "drawing"
	// ModeErasing removes existing strokes.
	ModeErasing Mode = "erasing"
)

// ResolveMode combines this frame's raw label with the pen state.
// An open palm always erases while held, with no toggle involved;
// pointing draws only while the pen is down. The erase check runs first,
// so overlapping geometric conditions prefer erase.
func ResolveMode(label classifier.Label, penDown bool) Mode {
	if label == classifier.LabelOpenPalm {
		return ModeErasing
	}
	if label == classifier.LabelPointing && penDown {
		return ModeDrawing
	}
	return ModeIdle
}
