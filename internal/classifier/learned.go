package classifier

import (
	"fmt"

	"github.com/ayusman/rangoli/internal/tracker"
)

// DefaultConfidenceThreshold is the minimum winning-class probability the
// learned classifier will report. Anything weaker becomes idle.
const DefaultConfidenceThreshold = 0.6

// Learned classifies poses through a trained model. The winning class is
// the arg-max of the probability vector; when its probability falls below
// the confidence threshold the result is idle regardless of which class
// the model preferred.
type Learned struct {
	model     *Model
	threshold float64
}

// NewLearned creates a learned classifier around a loaded model.
// Thresholds outside (0,1] fall back to the default.
func NewLearned(model *Model, threshold float64) *Learned {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultConfidenceThreshold
	}
	return &Learned{model: model, threshold: threshold}
}

// Classify runs the pose's feature vector through the model.
func (c *Learned) Classify(pose *tracker.HandPose) (Result, error) {
	features, err := Features(pose.Points[:])
	if err != nil {
		return Result{}, err
	}

	probs, err := c.model.Predict(features)
	if err != nil {
		return Result{}, fmt.Errorf("inference: %w", err)
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}

	confidence := probs[best]
	if confidence < c.threshold {
		return Result{Label: LabelIdle, Confidence: confidence}, nil
	}

	return Result{Label: c.model.Labels()[best], Confidence: confidence}, nil
}
