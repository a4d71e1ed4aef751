// Package classifier turns a single hand pose into one of four gesture
// labels, either through geometric rules or a trained model.
package classifier

import "github.com/ayusman/rangoli/internal/tracker"

// Label is one of the four gesture classes. The set is closed; downstream
// state machines switch on it exhaustively.
type Label string

const (
	// LabelPointing is an extended index finger with the rest curled.
	LabelPointing Label = "pointing"
	// LabelPinch is thumb and index fingertips touching.
	LabelPinch Label = "pinch"
	// LabelOpenPalm is all five fingers spread and extended.
	LabelOpenPalm Label = "open_palm"
	// LabelIdle is any pose that matches no other class.
	LabelIdle Label = "idle"
)

// Result is the outcome of classifying one hand pose.
type Result struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"` // in [0,1]
}

// Classifier is the contract shared by the rule-based and learned
// variants: one hand pose in, one labeled result out.
type Classifier interface {
	Classify(pose *tracker.HandPose) (Result, error)
}
